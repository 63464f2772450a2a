package usecase

import (
	"context"

	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/model"
)

// MemberReader resolves the calling principal.
type MemberReader interface {
	FindMemberByID(ctx context.Context, id uint) (*model.Member, error)
}

// ProjectReader reads canonical projects for ownership and the client's own
// pipeline.
type ProjectReader interface {
	FindProjectByID(ctx context.Context, id uint) (*model.Project, error)
	FindProjectsByClient(ctx context.Context, clientID uint, limit int) ([]model.Project, error)
}

// SearchEntryReader reads index rows that seed a query profile.
type SearchEntryReader interface {
	FindProjectEntry(ctx context.Context, projectID uint) (*model.ProjectSearch, error)
	FindFreelancerEntry(ctx context.Context, freelancerID uint) (*model.FreelancerSearch, error)
}

// SearchIndexWriter maintains the index tables.
type SearchIndexWriter interface {
	UpsertProject(ctx context.Context, projectID uint) (int64, error)
	UpsertFreelancer(ctx context.Context, freelancerID uint) (int64, error)
	RebuildProjects(ctx context.Context) (int64, error)
	RebuildFreelancers(ctx context.Context) (int64, error)
	CountProjectEntries(ctx context.Context) (int64, error)
	CountFreelancerEntries(ctx context.Context) (int64, error)
}

// Recommender ranks one index for a query profile.
type Recommender interface {
	RecommendProjects(ctx context.Context, p matching.FreelancerProfile, page matching.PageRequest) (matching.Page[matching.ScoredProject], error)
	RecommendFreelancers(ctx context.Context, p matching.ProjectProfile, page matching.PageRequest) (matching.Page[matching.ScoredFreelancer], error)
}
