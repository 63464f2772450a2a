package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRanker struct {
	projectQuery    RankQuery
	freelancerQuery RankQuery
	projects        []ScoredProject
	freelancers     []ScoredFreelancer
	total           int64
	err             error
}

func (f *fakeRanker) RankProjects(_ context.Context, q RankQuery) ([]ScoredProject, int64, error) {
	f.projectQuery = q
	return f.projects, f.total, f.err
}

func (f *fakeRanker) RankFreelancers(_ context.Context, q RankQuery) ([]ScoredFreelancer, int64, error) {
	f.freelancerQuery = q
	return f.freelancers, f.total, f.err
}

func TestEngine_RecommendProjects_FieldMapping(t *testing.T) {
	r := &fakeRanker{projects: []ScoredProject{{ProjectID: 3, Score: 2}}, total: 7}
	e := NewEngine(DefaultWeights(), r)

	profile := NewFreelancerProfile("백엔드", "Spring JPA", "Spring", MatchAny)
	page, err := e.RecommendProjects(context.Background(), profile, NewPageRequest(2, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 1)

	q := r.projectQuery
	assert.Nil(t, q.Boost)
	assert.Equal(t, 5, q.Offset)
	assert.Equal(t, 5, q.Limit)
	require.Len(t, q.Fields, 3)
	assert.Equal(t, FieldQuery{Field: FieldTitle, Query: profile.Job, Weight: 1.2}, q.Fields[0])
	assert.Equal(t, FieldQuery{Field: FieldPreferredCondition, Query: profile.Career, Weight: 1.0}, q.Fields[1])
	assert.Equal(t, FieldQuery{Field: FieldWorkingCondition, Query: profile.TechStack, Weight: 1.6}, q.Fields[2])
}

func TestEngine_RecommendFreelancers_BoostAndMapping(t *testing.T) {
	rated := 4.0
	r := &fakeRanker{
		freelancers: []ScoredFreelancer{
			{FreelancerID: 1, RatingAvg: &rated, Score: 3},
			{FreelancerID: 2, Score: 1},
		},
		total: 2,
	}
	e := NewEngine(DefaultWeights(), r)

	profile := NewProjectProfile("Backend", "", "Go Kafka", MatchAll)
	page, err := e.RecommendFreelancers(context.Background(), profile, NewPageRequest(1, 10))
	require.NoError(t, err)

	q := r.freelancerQuery
	require.NotNil(t, q.Boost)
	assert.InDelta(t, 0.75, q.Boost.Floor, 1e-9)
	assert.InDelta(t, 0.1, q.Boost.Slope, 1e-9)
	assert.InDelta(t, 2.5, q.Boost.DefaultRating, 1e-9)
	require.Len(t, q.Fields, 3)
	assert.Equal(t, FieldJob, q.Fields[0].Field)
	assert.Equal(t, FieldCareer, q.Fields[1].Field)
	assert.True(t, q.Fields[1].Query.IsPlaceholder())
	assert.Equal(t, FieldTechStack, q.Fields[2].Field)
	assert.Equal(t, MatchAll, q.Fields[2].Query.Mode)

	require.Len(t, page.Items, 2)
	assert.InDelta(t, 1.15, page.Items[0].RatingBoost, 1e-9)
	assert.InDelta(t, 1.0, page.Items[1].RatingBoost, 1e-9)
}

func TestEngine_NilItemsBecomeEmpty(t *testing.T) {
	e := NewEngine(DefaultWeights(), &fakeRanker{})

	projects, err := e.RecommendProjects(context.Background(), NewFreelancerProfile("", "", "", MatchAny), NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, projects.Items)
	assert.Empty(t, projects.Items)

	freelancers, err := e.RecommendFreelancers(context.Background(), NewProjectProfile("", "", "", MatchAny), NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, freelancers.Items)
}

func TestEngine_PropagatesRankerError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEngine(DefaultWeights(), &fakeRanker{err: boom})

	_, err := e.RecommendProjects(context.Background(), FreelancerProfile{}, NewPageRequest(1, 10))
	assert.ErrorIs(t, err, boom)

	_, err = e.RecommendFreelancers(context.Background(), ProjectProfile{}, NewPageRequest(1, 10))
	assert.ErrorIs(t, err, boom)
}
