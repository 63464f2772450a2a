package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/talent-match/internal/logger"
	"github.com/fadilmartias/talent-match/internal/metrics"
	"github.com/fadilmartias/talent-match/internal/model"
	"go.uber.org/zap"
)

const (
	opUpsert  = "upsert"
	opRebuild = "rebuild"
)

// RebuildResult reports the rows written per index table.
type RebuildResult struct {
	Projects    int64
	Freelancers int64
}

// IndexStats reports the current size of both index tables.
type IndexStats struct {
	Projects    int64
	Freelancers int64
}

// SearchIndexUsecase is called by collaborators right after they write a
// project or freelancer, and by administrators for maintenance. Failures are
// returned as is; retrying is up to the caller.
type SearchIndexUsecase struct {
	index SearchIndexWriter
}

func NewSearchIndexUsecase(index SearchIndexWriter) *SearchIndexUsecase {
	return &SearchIndexUsecase{index: index}
}

// UpsertProjectSearch returns 0 when the project does not exist.
func (uc *SearchIndexUsecase) UpsertProjectSearch(ctx context.Context, projectID uint) (int64, error) {
	n, err := uc.index.UpsertProject(ctx, projectID)
	metrics.IndexWrite(model.ProjectSearchTable, opUpsert, n, err)
	if err != nil {
		return 0, fmt.Errorf("upsert project search %d: %w", projectID, err)
	}
	logger.FromContext(ctx).Debug("project search upserted",
		zap.Uint("project_id", projectID), zap.Int64("rows", n))
	return n, nil
}

// UpsertFreelancerSearch returns 0 when the freelancer does not exist.
func (uc *SearchIndexUsecase) UpsertFreelancerSearch(ctx context.Context, freelancerID uint) (int64, error) {
	n, err := uc.index.UpsertFreelancer(ctx, freelancerID)
	metrics.IndexWrite(model.FreelancerSearchTable, opUpsert, n, err)
	if err != nil {
		return 0, fmt.Errorf("upsert freelancer search %d: %w", freelancerID, err)
	}
	logger.FromContext(ctx).Debug("freelancer search upserted",
		zap.Uint("freelancer_id", freelancerID), zap.Int64("rows", n))
	return n, nil
}

func (uc *SearchIndexUsecase) RebuildProjects(ctx context.Context) (int64, error) {
	n, err := uc.index.RebuildProjects(ctx)
	metrics.IndexWrite(model.ProjectSearchTable, opRebuild, n, err)
	if err != nil {
		return 0, fmt.Errorf("rebuild project search: %w", err)
	}
	logger.FromContext(ctx).Info("project search rebuilt", zap.Int64("rows", n))
	return n, nil
}

func (uc *SearchIndexUsecase) RebuildFreelancers(ctx context.Context) (int64, error) {
	n, err := uc.index.RebuildFreelancers(ctx)
	metrics.IndexWrite(model.FreelancerSearchTable, opRebuild, n, err)
	if err != nil {
		return 0, fmt.Errorf("rebuild freelancer search: %w", err)
	}
	logger.FromContext(ctx).Info("freelancer search rebuilt", zap.Int64("rows", n))
	return n, nil
}

// RebuildAll rebuilds projects then freelancers. Each table is rebuilt in its
// own transaction; a freelancer failure leaves the new project index in place.
func (uc *SearchIndexUsecase) RebuildAll(ctx context.Context) (RebuildResult, error) {
	var res RebuildResult
	var err error
	if res.Projects, err = uc.RebuildProjects(ctx); err != nil {
		return res, err
	}
	if res.Freelancers, err = uc.RebuildFreelancers(ctx); err != nil {
		return res, err
	}
	return res, nil
}

func (uc *SearchIndexUsecase) Stats(ctx context.Context) (IndexStats, error) {
	var stats IndexStats
	var err error
	if stats.Projects, err = uc.index.CountProjectEntries(ctx); err != nil {
		return stats, fmt.Errorf("count project search: %w", err)
	}
	if stats.Freelancers, err = uc.index.CountFreelancerEntries(ctx); err != nil {
		return stats, fmt.Errorf("count freelancer search: %w", err)
	}
	return stats, nil
}
