package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fadilmartias/talent-match/internal/database"
	"github.com/fadilmartias/talent-match/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIndex_UpsertProject_ReplacesWholeRow(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	client := s.member(model.RoleClient, model.MemberStatusActive)
	p := s.project(client.ID, model.Project{
		Title:              "Spring backend",
		Summary:            "first",
		PreferredCondition: "JPA experience",
		WorkingCondition:   "remote",
		Price:              100,
	})

	n, err := repo.UpsertProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	p.Title = "Go platform"
	p.Summary = "second"
	p.PreferredCondition = ""
	p.Status = model.ProjectStatusClosed
	require.NoError(t, NewProjectRepository(db).UpdateProject(ctx, p))

	n, err = repo.UpsertProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entry, err := repo.FindProjectEntry(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Go platform", entry.Title)
	assert.Equal(t, "second", entry.Summary)
	assert.Empty(t, entry.PreferredCondition)
	assert.Equal(t, "remote", entry.WorkingCondition)
	assert.Equal(t, model.ProjectStatusClosed, entry.Status)
	assert.Equal(t, int64(100), entry.Price)

	count, err := repo.CountProjectEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSearchIndex_UpsertProject_MissingSource(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	n, err := repo.UpsertProject(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, n)

	client := s.member(model.RoleClient, model.MemberStatusActive)
	p := s.project(client.ID, model.Project{Title: "to be deleted"})
	n, err = repo.UpsertProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, NewProjectRepository(db).DeleteProject(ctx, p.ID))
	n, err = repo.UpsertProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	entry, err := repo.FindProjectEntry(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, entry, "stale entry must be removed")
}

func TestSearchIndex_UpsertFreelancer(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	f := s.freelancer(model.MemberStatusActive, "백엔드", `{"Spring": 36, "JPA": 12}`, "Spring", "Docker", "JPA")
	s.review(f.ID, 4)
	s.review(f.ID, 5)

	n, err := repo.UpsertFreelancer(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entry, err := repo.FindFreelancerEntry(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, model.MemberStatusActive, entry.Status)
	assert.Equal(t, "백엔드", entry.Job)
	assert.Equal(t, "Spring JPA", entry.Career)
	assert.Equal(t, "Docker JPA Spring", entry.TechStack)
	require.NotNil(t, entry.RatingAvg)
	assert.InDelta(t, 4.5, *entry.RatingAvg, 1e-9)
}

func TestSearchIndex_UpsertFreelancer_ReplacesSkillsAndStatus(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	f := s.freelancer(model.MemberStatusActive, "Backend", "", "Spring", "JPA")
	_, err := repo.UpsertFreelancer(ctx, f.ID)
	require.NoError(t, err)

	f.Job = "Platform"
	f.Skills = s.skills("Kafka", "Go")
	require.NoError(t, NewFreelancerRepository(db).UpdateFreelancer(ctx, f))

	member, err := NewMemberRepository(db).FindMemberByID(ctx, f.ID)
	require.NoError(t, err)
	member.Status = model.MemberStatusInactive
	require.NoError(t, NewMemberRepository(db).UpdateMember(ctx, member))

	n, err := repo.UpsertFreelancer(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entry, err := repo.FindFreelancerEntry(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Platform", entry.Job)
	assert.Equal(t, "Go Kafka", entry.TechStack)
	assert.Empty(t, entry.Career)
	assert.Nil(t, entry.RatingAvg)
	assert.Equal(t, model.MemberStatusInactive, entry.Status)

	count, err := repo.CountFreelancerEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSearchIndex_UpsertFreelancer_MissingSource(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)

	n, err := repo.UpsertFreelancer(context.Background(), 404)
	require.NoError(t, err)
	assert.Zero(t, n)

	// A member without a freelancer profile has nothing to index either.
	m := s.member(model.RoleFreelancer, model.MemberStatusActive)
	n, err = repo.UpsertFreelancer(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchIndex_RebuildProjects(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	client := s.member(model.RoleClient, model.MemberStatusActive)
	for i := 0; i < 3; i++ {
		s.project(client.ID, model.Project{Title: "project"})
	}
	require.NoError(t, db.Create(&model.ProjectSearch{ProjectID: 9999, Title: "orphan", Status: model.ProjectStatusOpen}).Error)

	n, err := repo.RebuildProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	count, err := repo.CountProjectEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	orphan, err := repo.FindProjectEntry(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, orphan)
}

func TestSearchIndex_RebuildProjects_Empty(t *testing.T) {
	db, dialect := database.OpenTest(t)
	repo := NewSearchIndexRepository(db, dialect)

	n, err := repo.RebuildProjects(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchIndex_RebuildFreelancers(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	rated := s.freelancer(model.MemberStatusActive, "Backend", `{"Go": 24}`, "Go", "Kafka")
	s.review(rated.ID, 3)
	inactive := s.freelancer(model.MemberStatusInactive, "Frontend", "", "React")
	// Profile whose member row is gone.
	require.NoError(t, db.Create(&model.Freelancer{ID: 5000, Job: "ghost"}).Error)

	n, err := repo.RebuildFreelancers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entry, err := repo.FindFreelancerEntry(ctx, rated.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Go", entry.Career)
	assert.Equal(t, "Go Kafka", entry.TechStack)
	require.NotNil(t, entry.RatingAvg)
	assert.InDelta(t, 3.0, *entry.RatingAvg, 1e-9)

	entry, err = repo.FindFreelancerEntry(ctx, inactive.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, model.MemberStatusInactive, entry.Status)
	assert.Nil(t, entry.RatingAvg)

	ghost, err := repo.FindFreelancerEntry(ctx, 5000)
	require.NoError(t, err)
	assert.Nil(t, ghost)
}

func TestSearchIndex_RebuildIsAtomicForReaders(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	const projects = 40
	client := s.member(model.RoleClient, model.MemberStatusActive)
	for i := 0; i < projects; i++ {
		s.project(client.ID, model.Project{Title: "Spring backend"})
	}
	_, err := repo.RebuildProjects(ctx)
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		done  atomic.Bool
		reads atomic.Int64
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer done.Store(true)
		for i := 0; i < 5; i++ {
			if _, err := repo.RebuildProjects(ctx); err != nil {
				t.Errorf("rebuild: %v", err)
				return
			}
		}
	}()

	for !done.Load() {
		count, err := repo.CountProjectEntries(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(projects), count, "reader observed a partial index")
		reads.Add(1)
	}
	wg.Wait()
	assert.Positive(t, reads.Load())
}

func TestSearchIndex_ConcurrentUpsertsKeepOneRow(t *testing.T) {
	db, dialect := database.OpenTest(t)
	s := newSeeder(t, db)
	repo := NewSearchIndexRepository(db, dialect)
	ctx := context.Background()

	client := s.member(model.RoleClient, model.MemberStatusActive)
	p := s.project(client.ID, model.Project{Title: "Spring"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, err := repo.UpsertProject(ctx, p.ID)
				assert.NoError(t, err)
				return
			}
			_, err := repo.RebuildProjects(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.CountProjectEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
