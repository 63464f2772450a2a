package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/fadilmartias/talent-match/internal/dto"
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/middleware"
	"github.com/fadilmartias/talent-match/internal/response"
	"github.com/fadilmartias/talent-match/internal/usecase"
	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
)

const defaultOptionLimit = 20

type RecommendationService interface {
	Recommend(ctx context.Context, req usecase.RecommendRequest) (*usecase.RecommendationPage, error)
	ListOwnProjectOptions(ctx context.Context, memberID uint, limit int) ([]usecase.ProjectOption, error)
}

type RecommendationHandler struct {
	uc      RecommendationService
	timeout time.Duration
}

func NewRecommendationHandler(uc RecommendationService, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{uc: uc, timeout: timeout}
}

// RegisterRoutes mounts the handler on a router that already runs
// middleware.Principal.
func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/recommendations", h.Recommend)
	r.Get("/projects/options", h.ProjectOptions)
}

func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	fields := map[string]string{}
	req := usecase.RecommendRequest{
		MemberID: middleware.MemberID(c),
		Page:     queryInt(c, "page", 1, fields),
		Size:     queryInt(c, "size", matching.DefaultPageSize, fields),
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			fields["project_id"] = "must be a positive integer"
		} else {
			pid := uint(id)
			req.ProjectID = &pid
		}
	}
	mode, err := matching.ParseMode(c.Query("match"))
	if err != nil {
		fields["match"] = "must be any or all"
	}
	req.Mode = mode
	if len(fields) > 0 {
		return badRequest(c, fields)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.uc.Recommend(ctx, req)
	if err != nil {
		return failure(c, "failed to load recommendations", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get recommendations",
		Data:       dto.NewRecommendationDTO(page),
		Pagination: response.NewPagination(page.Page, page.Size, len(page.Projects)+len(page.Freelancers), page.Total),
	})
}

func (h *RecommendationHandler) ProjectOptions(c *fiber.Ctx) error {
	fields := map[string]string{}
	limit := queryInt(c, "limit", defaultOptionLimit, fields)
	if len(fields) > 0 {
		return badRequest(c, fields)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	options, err := h.uc.ListOwnProjectOptions(ctx, middleware.MemberID(c), limit)
	if err != nil {
		return failure(c, "failed to load projects", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get project options",
		Data:    dto.NewProjectOptionDTOs(options),
	})
}
