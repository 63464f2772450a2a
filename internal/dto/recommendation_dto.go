package dto

import (
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/usecase"
)

type ProjectRecommendationDTO struct {
	ProjectID uint    `json:"project_id"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Duration  string  `json:"duration"`
	Price     int64   `json:"price"`
	Status    string  `json:"status"`
	Score     float64 `json:"score"`
}

type FreelancerRecommendationDTO struct {
	FreelancerID uint     `json:"freelancer_id"`
	Job          string   `json:"job"`
	Comment      string   `json:"comment"`
	TechStack    string   `json:"tech_stack"`
	RatingAvg    *float64 `json:"rating_avg"`
	RatingBoost  float64  `json:"rating_boost"`
	Score        float64  `json:"score"`
}

// RecommendationDTO is the response body of a recommendation call. Items
// holds ProjectRecommendationDTO values for kind "projects",
// FreelancerRecommendationDTO values for kind "freelancers" and is an empty
// array otherwise.
type RecommendationDTO struct {
	Kind  string `json:"kind"`
	Items any    `json:"items"`
}

type ProjectOptionDTO struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func NewRecommendationDTO(p *usecase.RecommendationPage) RecommendationDTO {
	switch p.Kind {
	case usecase.KindProjects:
		items := make([]ProjectRecommendationDTO, 0, len(p.Projects))
		for _, it := range p.Projects {
			items = append(items, projectRecommendation(it))
		}
		return RecommendationDTO{Kind: p.Kind, Items: items}
	case usecase.KindFreelancers:
		items := make([]FreelancerRecommendationDTO, 0, len(p.Freelancers))
		for _, it := range p.Freelancers {
			items = append(items, freelancerRecommendation(it))
		}
		return RecommendationDTO{Kind: p.Kind, Items: items}
	default:
		return RecommendationDTO{Kind: p.Kind, Items: []struct{}{}}
	}
}

func NewProjectOptionDTOs(options []usecase.ProjectOption) []ProjectOptionDTO {
	out := make([]ProjectOptionDTO, 0, len(options))
	for _, o := range options {
		out = append(out, ProjectOptionDTO{ID: o.ID, Title: o.Title, Status: o.Status})
	}
	return out
}

func projectRecommendation(p matching.ScoredProject) ProjectRecommendationDTO {
	return ProjectRecommendationDTO{
		ProjectID: p.ProjectID,
		Title:     p.Title,
		Summary:   p.Summary,
		Duration:  p.Duration,
		Price:     p.Price,
		Status:    p.Status,
		Score:     p.Score,
	}
}

func freelancerRecommendation(f matching.ScoredFreelancer) FreelancerRecommendationDTO {
	return FreelancerRecommendationDTO{
		FreelancerID: f.FreelancerID,
		Job:          f.Job,
		Comment:      f.Comment,
		TechStack:    f.TechStack,
		RatingAvg:    f.RatingAvg,
		RatingBoost:  f.RatingBoost,
		Score:        f.Score,
	}
}
