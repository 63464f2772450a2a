package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/middleware"
	"github.com/fadilmartias/talent-match/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommendations struct {
	got     usecase.RecommendRequest
	page    *usecase.RecommendationPage
	options []usecase.ProjectOption
	limit   int
	err     error
}

func (f *fakeRecommendations) Recommend(_ context.Context, req usecase.RecommendRequest) (*usecase.RecommendationPage, error) {
	f.got = req
	return f.page, f.err
}

func (f *fakeRecommendations) ListOwnProjectOptions(_ context.Context, memberID uint, limit int) ([]usecase.ProjectOption, error) {
	f.got.MemberID = memberID
	f.limit = limit
	return f.options, f.err
}

func newRecommendationApp(svc RecommendationService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", middleware.Principal())
	NewRecommendationHandler(svc, 0).RegisterRoutes(api)
	return app
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Details    json.RawMessage `json:"details"`
	Pagination *struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int64 `json:"total_pages"`
		TotalItems int64 `json:"total_items"`
		HasMore    bool  `json:"has_more"`
		From       int   `json:"from"`
		To         int   `json:"to"`
	} `json:"pagination"`
}

func do(t *testing.T, app *fiber.App, method, target string, memberID uint) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if memberID != 0 {
		req.Header.Set(middleware.MemberIDHeader, fmt.Sprint(memberID))
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestRecommend_ProjectsPage(t *testing.T) {
	svc := &fakeRecommendations{page: &usecase.RecommendationPage{
		Kind: usecase.KindProjects,
		Projects: []matching.ScoredProject{
			{ProjectID: 4, Title: "Spring API", Status: "OPEN", Score: 1.6},
		},
		Total: 3,
		Page:  2,
		Size:  1,
	}}
	app := newRecommendationApp(svc)

	status, env := do(t, app, "GET", "/api/recommendations?page=2&size=1&match=all", 7)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)

	assert.Equal(t, uint(7), svc.got.MemberID)
	assert.Equal(t, 2, svc.got.Page)
	assert.Equal(t, 1, svc.got.Size)
	assert.Equal(t, matching.MatchAll, svc.got.Mode)
	assert.Nil(t, svc.got.ProjectID)

	var data struct {
		Kind  string `json:"kind"`
		Items []struct {
			ProjectID uint    `json:"project_id"`
			Title     string  `json:"title"`
			Score     float64 `json:"score"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "projects", data.Kind)
	require.Len(t, data.Items, 1)
	assert.Equal(t, uint(4), data.Items[0].ProjectID)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(3), env.Pagination.TotalItems)
	assert.Equal(t, int64(3), env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasMore)
	assert.Equal(t, 2, env.Pagination.From)
	assert.Equal(t, 2, env.Pagination.To)
}

func TestRecommend_EmptyPageKeepsShape(t *testing.T) {
	svc := &fakeRecommendations{page: &usecase.RecommendationPage{Kind: usecase.KindNone, Page: 1, Size: 10}}
	app := newRecommendationApp(svc)

	status, env := do(t, app, "GET", "/api/recommendations", 1)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"kind":"none","items":[]}`, string(env.Data))
	assert.Equal(t, 0, env.Pagination.From)
	assert.False(t, env.Pagination.HasMore)
}

func TestRecommend_TargetProject(t *testing.T) {
	svc := &fakeRecommendations{page: &usecase.RecommendationPage{Kind: usecase.KindFreelancers, Page: 1, Size: 10}}
	app := newRecommendationApp(svc)

	status, _ := do(t, app, "GET", "/api/recommendations?project_id=12", 3)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, svc.got.ProjectID)
	assert.Equal(t, uint(12), *svc.got.ProjectID)
}

func TestRecommend_BadQuery(t *testing.T) {
	app := newRecommendationApp(&fakeRecommendations{})

	status, env := do(t, app, "GET", "/api/recommendations?page=x&project_id=-1&match=some", 3)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Contains(t, details, "page")
	assert.Contains(t, details, "project_id")
	assert.Contains(t, details, "match")
}

func TestRecommend_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown member", fmt.Errorf("wrap: %w", matching.ErrUnauthorizedPrincipal), fiber.StatusUnauthorized},
		{"foreign project", fmt.Errorf("wrap: %w", matching.ErrProjectNotOwned), fiber.StatusForbidden},
		{"timeout", fmt.Errorf("rank: %w", context.DeadlineExceeded), fiber.StatusGatewayTimeout},
		{"store failure", fmt.Errorf("rank: boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newRecommendationApp(&fakeRecommendations{err: tt.err})
			status, env := do(t, app, "GET", "/api/recommendations", 5)
			assert.Equal(t, tt.want, status)
			assert.False(t, env.Success)
		})
	}
}

func TestRecommend_RequiresPrincipal(t *testing.T) {
	svc := &fakeRecommendations{}
	app := newRecommendationApp(svc)

	status, _ := do(t, app, "GET", "/api/recommendations", 0)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	req := httptest.NewRequest("GET", "/api/recommendations", nil)
	req.Header.Set(middleware.MemberIDHeader, "abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, svc.got.MemberID, "service must not be reached")
}

func TestProjectOptions(t *testing.T) {
	svc := &fakeRecommendations{options: []usecase.ProjectOption{{ID: 2, Title: "Backend", Status: "OPEN"}}}
	app := newRecommendationApp(svc)

	status, env := do(t, app, "GET", "/api/projects/options", 9)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, defaultOptionLimit, svc.limit)
	assert.JSONEq(t, `[{"id":2,"title":"Backend","status":"OPEN"}]`, string(env.Data))

	_, _ = do(t, app, "GET", "/api/projects/options?limit=500", 9)
	assert.Equal(t, 500, svc.limit, "clamping belongs to the usecase")
}
