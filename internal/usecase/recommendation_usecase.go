package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/talent-match/internal/logger"
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/metrics"
	"github.com/fadilmartias/talent-match/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result kinds of a recommendation page.
const (
	KindProjects    = "projects"
	KindFreelancers = "freelancers"
	KindNone        = "none"
)

const (
	minOptionLimit = 1
	maxOptionLimit = 200
)

type RecommendRequest struct {
	MemberID  uint
	ProjectID *uint
	Page      int
	Size      int
	Mode      matching.Mode
}

// RecommendationPage is a ranked page whose item shape depends on Kind:
// Projects is set for freelancers, Freelancers for clients.
type RecommendationPage struct {
	Kind        string
	Projects    []matching.ScoredProject
	Freelancers []matching.ScoredFreelancer
	Total       int64
	Page        int
	Size        int
}

type ProjectOption struct {
	ID     uint
	Title  string
	Status string
}

// recommendQuery is the caller's request resolved once by role.
type recommendQuery interface {
	kind() string
}

type freelancerQuery struct {
	profile matching.FreelancerProfile
}

type clientQuery struct {
	projectID uint
	profile   matching.ProjectProfile
}

// emptyQuery has nothing to rank: an unindexed caller, a client without
// projects or a role that gets no recommendations.
type emptyQuery struct {
	resultKind string
}

func (freelancerQuery) kind() string { return KindProjects }
func (clientQuery) kind() string     { return KindFreelancers }
func (q emptyQuery) kind() string    { return q.resultKind }

type RecommendationUsecase struct {
	members  MemberReader
	projects ProjectReader
	entries  SearchEntryReader
	engine   Recommender
}

func NewRecommendationUsecase(members MemberReader, projects ProjectReader, entries SearchEntryReader, engine Recommender) *RecommendationUsecase {
	return &RecommendationUsecase{members: members, projects: projects, entries: entries, engine: engine}
}

// Recommend ranks projects for a freelancer or freelancers for a client's
// project. Only an unknown caller and a foreign target project are errors;
// every "nothing to rank yet" case yields an empty page.
func (uc *RecommendationUsecase) Recommend(ctx context.Context, req RecommendRequest) (*RecommendationPage, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	page := matching.NewPageRequest(req.Page, req.Size)

	member, err := uc.principal(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	q, err := uc.resolve(ctx, member, req)
	if err != nil {
		return nil, err
	}

	out := &RecommendationPage{Kind: q.kind(), Page: page.Page, Size: page.Size}
	switch q := q.(type) {
	case freelancerQuery:
		res, err := uc.engine.RecommendProjects(ctx, q.profile, page)
		if err != nil {
			return nil, fmt.Errorf("recommend projects for %d: %w", member.ID, err)
		}
		out.Projects, out.Total = res.Items, res.Total
	case clientQuery:
		res, err := uc.engine.RecommendFreelancers(ctx, q.profile, page)
		if err != nil {
			return nil, fmt.Errorf("recommend freelancers for project %d: %w", q.projectID, err)
		}
		out.Freelancers, out.Total = res.Items, res.Total
	case emptyQuery:
	}
	out.fillEmpty()

	returned := len(out.Projects) + len(out.Freelancers)
	metrics.RecommendationDuration.WithLabelValues(out.Kind).Observe(time.Since(start).Seconds())
	metrics.RecommendationResultsTotal.WithLabelValues(out.Kind).Add(float64(returned))
	log.Debug("recommendation served",
		zap.Uint("member_id", member.ID),
		zap.String("role", member.Role),
		zap.String("kind", out.Kind),
		zap.String("mode", req.Mode.String()),
		zap.Int64("total", out.Total),
		zap.Int("returned", returned),
	)
	return out, nil
}

// ListOwnProjectOptions returns a client's projects newest first, limit
// clamped to [1, 200]. Other roles get an empty list.
func (uc *RecommendationUsecase) ListOwnProjectOptions(ctx context.Context, memberID uint, limit int) ([]ProjectOption, error) {
	member, err := uc.principal(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Role != model.RoleClient {
		return []ProjectOption{}, nil
	}

	projects, err := uc.projects.FindProjectsByClient(ctx, member.ID, clampOptionLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list projects of %d: %w", member.ID, err)
	}
	options := make([]ProjectOption, 0, len(projects))
	for _, p := range projects {
		options = append(options, ProjectOption{ID: p.ID, Title: p.Title, Status: p.Status})
	}
	return options, nil
}

func (uc *RecommendationUsecase) principal(ctx context.Context, memberID uint) (*model.Member, error) {
	if memberID == 0 {
		return nil, matching.ErrUnauthorizedPrincipal
	}
	member, err := uc.members.FindMemberByID(ctx, memberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: member %d", matching.ErrUnauthorizedPrincipal, memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("load member %d: %w", memberID, err)
	}
	return member, nil
}

func (uc *RecommendationUsecase) resolve(ctx context.Context, member *model.Member, req RecommendRequest) (recommendQuery, error) {
	switch member.Role {
	case model.RoleFreelancer:
		return uc.resolveFreelancer(ctx, member, req.Mode)
	case model.RoleClient:
		return uc.resolveClient(ctx, member, req.ProjectID, req.Mode)
	default:
		return emptyQuery{resultKind: KindNone}, nil
	}
}

func (uc *RecommendationUsecase) resolveFreelancer(ctx context.Context, member *model.Member, mode matching.Mode) (recommendQuery, error) {
	entry, err := uc.entries.FindFreelancerEntry(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("load freelancer entry %d: %w", member.ID, err)
	}
	if entry == nil {
		return emptyQuery{resultKind: KindProjects}, nil
	}
	return freelancerQuery{
		profile: matching.NewFreelancerProfile(entry.Job, entry.Career, entry.TechStack, mode),
	}, nil
}

func (uc *RecommendationUsecase) resolveClient(ctx context.Context, member *model.Member, target *uint, mode matching.Mode) (recommendQuery, error) {
	none := emptyQuery{resultKind: KindFreelancers}

	var projectID uint
	if target != nil {
		project, err := uc.projects.FindProjectByID(ctx, *target)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return none, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load project %d: %w", *target, err)
		}
		if project.ClientID != member.ID {
			return nil, fmt.Errorf("%w: project %d", matching.ErrProjectNotOwned, project.ID)
		}
		projectID = project.ID
	} else {
		latest, err := uc.projects.FindProjectsByClient(ctx, member.ID, 1)
		if err != nil {
			return nil, fmt.Errorf("load latest project of %d: %w", member.ID, err)
		}
		if len(latest) == 0 {
			return none, nil
		}
		projectID = latest[0].ID
	}

	entry, err := uc.entries.FindProjectEntry(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project entry %d: %w", projectID, err)
	}
	if entry == nil {
		return none, nil
	}
	return clientQuery{
		projectID: projectID,
		profile:   matching.NewProjectProfile(entry.Title, entry.PreferredCondition, entry.WorkingCondition, mode),
	}, nil
}

// fillEmpty keeps the slice of the page's kind non-nil.
func (p *RecommendationPage) fillEmpty() {
	switch p.Kind {
	case KindProjects:
		if p.Projects == nil {
			p.Projects = []matching.ScoredProject{}
		}
	case KindFreelancers:
		if p.Freelancers == nil {
			p.Freelancers = []matching.ScoredFreelancer{}
		}
	}
}

func clampOptionLimit(limit int) int {
	switch {
	case limit < minOptionLimit:
		return minOptionLimit
	case limit > maxOptionLimit:
		return maxOptionLimit
	default:
		return limit
	}
}
