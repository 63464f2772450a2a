package matching

import (
	"context"
	"fmt"
)

// ScoredProject is a project ranked for a freelancer.
type ScoredProject struct {
	ProjectID uint
	Title     string
	Summary   string
	Duration  string
	Price     int64
	Status    string
	Score     float64
}

// ScoredFreelancer is a freelancer ranked for a project.
type ScoredFreelancer struct {
	FreelancerID uint
	Job          string
	Comment      string
	TechStack    string
	RatingAvg    *float64
	RatingBoost  float64
	Score        float64
}

// FieldQuery scores one index column against one query with a weight.
type FieldQuery struct {
	Field  Field
	Query  Query
	Weight float64
}

// RatingBoost parameterizes the multiplier applied to freelancer scores.
type RatingBoost struct {
	Floor         float64
	Slope         float64
	DefaultRating float64
}

// RankQuery is what the Ranker executes: a weighted sum over Fields, an
// optional rating boost, and an offset/limit window. A row is eligible when
// at least one field matches and it passes the index's status gate.
type RankQuery struct {
	Fields []FieldQuery
	Boost  *RatingBoost
	Offset int
	Limit  int
}

// Ranker runs a RankQuery against one of the two index tables using the
// store's text-match primitive. It returns the requested window ordered by
// score descending then id ascending, and the total number of eligible rows.
type Ranker interface {
	RankProjects(ctx context.Context, q RankQuery) ([]ScoredProject, int64, error)
	RankFreelancers(ctx context.Context, q RankQuery) ([]ScoredFreelancer, int64, error)
}

// Engine turns query profiles into weighted rank queries.
type Engine struct {
	weights Weights
	ranker  Ranker
}

// NewEngine creates an engine with fixed weights.
func NewEngine(weights Weights, ranker Ranker) *Engine {
	return &Engine{weights: weights, ranker: ranker}
}

// Weights returns the engine's configuration.
func (e *Engine) Weights() Weights { return e.weights }

// RecommendProjects ranks OPEN projects for a freelancer profile: job against
// title, career against preferred condition, tech stack against working
// condition.
func (e *Engine) RecommendProjects(
	ctx context.Context, p FreelancerProfile, page PageRequest,
) (Page[ScoredProject], error) {
	q := RankQuery{
		Fields: []FieldQuery{
			{Field: FieldTitle, Query: p.Job, Weight: e.weights.ProjectTitle},
			{Field: FieldPreferredCondition, Query: p.Career, Weight: e.weights.ProjectPreferred},
			{Field: FieldWorkingCondition, Query: p.TechStack, Weight: e.weights.ProjectWorking},
		},
		Offset: page.Offset(),
		Limit:  page.Size,
	}

	items, total, err := e.ranker.RankProjects(ctx, q)
	if err != nil {
		return Page[ScoredProject]{}, fmt.Errorf("rank projects: %w", err)
	}
	if items == nil {
		items = []ScoredProject{}
	}
	return Page[ScoredProject]{Items: items, Total: total, Page: page.Page, Size: page.Size}, nil
}

// RecommendFreelancers ranks ACTIVE freelancers for a project profile: title
// against job, preferred condition against career, working condition against
// tech stack, with the rating boost applied.
func (e *Engine) RecommendFreelancers(
	ctx context.Context, p ProjectProfile, page PageRequest,
) (Page[ScoredFreelancer], error) {
	q := RankQuery{
		Fields: []FieldQuery{
			{Field: FieldJob, Query: p.Title, Weight: e.weights.FreelancerJob},
			{Field: FieldCareer, Query: p.Preferred, Weight: e.weights.FreelancerCareer},
			{Field: FieldTechStack, Query: p.Working, Weight: e.weights.FreelancerStack},
		},
		Boost: &RatingBoost{
			Floor:         e.weights.BoostFloor(),
			Slope:         e.weights.RatingSlope,
			DefaultRating: e.weights.DefaultRating,
		},
		Offset: page.Offset(),
		Limit:  page.Size,
	}

	items, total, err := e.ranker.RankFreelancers(ctx, q)
	if err != nil {
		return Page[ScoredFreelancer]{}, fmt.Errorf("rank freelancers: %w", err)
	}
	if items == nil {
		items = []ScoredFreelancer{}
	}
	for i := range items {
		items[i].RatingBoost = e.weights.Boost(items[i].RatingAvg)
	}
	return Page[ScoredFreelancer]{Items: items, Total: total, Page: page.Page, Size: page.Size}, nil
}
