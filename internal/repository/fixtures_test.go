package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fadilmartias/talent-match/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seeder struct {
	t  *testing.T
	db *gorm.DB
	n  int
}

func newSeeder(t *testing.T, db *gorm.DB) *seeder {
	return &seeder{t: t, db: db}
}

func (s *seeder) member(role, status string) *model.Member {
	s.t.Helper()
	s.n++
	m := &model.Member{
		Email:  fmt.Sprintf("member%d@example.com", s.n),
		Name:   fmt.Sprintf("member %d", s.n),
		Role:   role,
		Status: status,
	}
	require.NoError(s.t, NewMemberRepository(s.db).CreateMember(context.Background(), m))
	return m
}

func (s *seeder) project(clientID uint, p model.Project) *model.Project {
	s.t.Helper()
	p.ClientID = clientID
	if p.Status == "" {
		p.Status = model.ProjectStatusOpen
	}
	require.NoError(s.t, NewProjectRepository(s.db).CreateProject(context.Background(), &p))
	return &p
}

// projectAt creates a project with an explicit creation time.
func (s *seeder) projectAt(clientID uint, title string, createdAt time.Time) *model.Project {
	s.t.Helper()
	return s.project(clientID, model.Project{Title: title, CreatedAt: createdAt})
}

func (s *seeder) skills(names ...string) []model.Skill {
	s.t.Helper()
	out := make([]model.Skill, 0, len(names))
	for _, name := range names {
		skill := model.Skill{Name: name}
		require.NoError(s.t, s.db.Where(model.Skill{Name: name}).FirstOrCreate(&skill).Error)
		out = append(out, skill)
	}
	return out
}

// freelancer creates an ACTIVE or INACTIVE freelancer member with a profile.
func (s *seeder) freelancer(status, job, career string, skills ...string) *model.Freelancer {
	s.t.Helper()
	m := s.member(model.RoleFreelancer, status)
	f := &model.Freelancer{
		ID:     m.ID,
		Job:    job,
		Career: datatypes.JSON(career),
		Skills: s.skills(skills...),
	}
	require.NoError(s.t, NewFreelancerRepository(s.db).CreateFreelancer(context.Background(), f))
	return f
}

func (s *seeder) review(freelancerID uint, rating float64) {
	s.t.Helper()
	require.NoError(s.t, NewFreelancerRepository(s.db).AddReview(context.Background(), &model.Review{
		FreelancerID: freelancerID,
		Rating:       rating,
	}))
}
