package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/talent-match/internal/dto"
	"github.com/fadilmartias/talent-match/internal/usecase"
	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
)

// Rebuild targets.
const (
	TargetAll         = "all"
	TargetProjects    = "projects"
	TargetFreelancers = "freelancers"
)

const rebuildTimeout = 10 * time.Minute

type SearchIndexService interface {
	UpsertProjectSearch(ctx context.Context, projectID uint) (int64, error)
	UpsertFreelancerSearch(ctx context.Context, freelancerID uint) (int64, error)
	RebuildAll(ctx context.Context) (usecase.RebuildResult, error)
	RebuildProjects(ctx context.Context) (int64, error)
	RebuildFreelancers(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (usecase.IndexStats, error)
}

type SearchIndexHandler struct {
	uc      SearchIndexService
	timeout time.Duration
}

func NewSearchIndexHandler(uc SearchIndexService, timeout time.Duration) *SearchIndexHandler {
	return &SearchIndexHandler{uc: uc, timeout: timeout}
}

// RegisterRoutes mounts the maintenance endpoints on an admin router.
func (h *SearchIndexHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/search-index")
	g.Post("/projects/:id", h.UpsertProject)
	g.Post("/freelancers/:id", h.UpsertFreelancer)
	g.Post("/rebuild", h.Rebuild)
	g.Get("/stats", h.Stats)
}

func (h *SearchIndexHandler) UpsertProject(c *fiber.Ctx) error {
	return h.upsert(c, "project", h.uc.UpsertProjectSearch)
}

func (h *SearchIndexHandler) UpsertFreelancer(c *fiber.Ctx) error {
	return h.upsert(c, "freelancer", h.uc.UpsertFreelancerSearch)
}

// upsert answers 200 with indexed=false when the source id does not exist;
// the row count is the signal, not the status code.
func (h *SearchIndexHandler) upsert(c *fiber.Ctx, entity string, fn func(context.Context, uint) (int64, error)) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, map[string]string{"id": "must be a positive integer"})
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	rows, err := fn(ctx, id)
	if err != nil {
		return failure(c, "failed to index "+entity, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success index " + entity,
		Data:    dto.UpsertResultDTO{ID: id, Rows: rows, Indexed: rows > 0},
	})
}

func (h *SearchIndexHandler) Rebuild(c *fiber.Ctx) error {
	target := c.Query("target", TargetAll)

	ctx, cancel := context.WithTimeout(c.UserContext(), rebuildTimeout)
	defer cancel()

	var out dto.RebuildResultDTO
	switch target {
	case TargetAll:
		res, err := h.uc.RebuildAll(ctx)
		if err != nil {
			return failure(c, "failed to rebuild search index", err)
		}
		out.Projects, out.Freelancers = &res.Projects, &res.Freelancers
	case TargetProjects:
		n, err := h.uc.RebuildProjects(ctx)
		if err != nil {
			return failure(c, "failed to rebuild project search", err)
		}
		out.Projects = &n
	case TargetFreelancers:
		n, err := h.uc.RebuildFreelancers(ctx)
		if err != nil {
			return failure(c, "failed to rebuild freelancer search", err)
		}
		out.Freelancers = &n
	default:
		return badRequest(c, map[string]string{"target": "must be all, projects or freelancers"})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success rebuild search index",
		Data:    out,
	})
}

func (h *SearchIndexHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	stats, err := h.uc.Stats(ctx)
	if err != nil {
		return failure(c, "failed to load search index stats", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get search index stats",
		Data:    dto.IndexStatsDTO{Projects: stats.Projects, Freelancers: stats.Freelancers},
	})
}
