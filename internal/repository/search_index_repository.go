package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fadilmartias/talent-match/internal/database"
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const rebuildBatchSize = 500

// SearchIndexRepository keeps project_search and freelancer_search in step
// with the canonical tables. Every write replaces whole rows inside one
// transaction that holds the dialect's index lock.
type SearchIndexRepository struct {
	db      *gorm.DB
	dialect database.Dialect
}

func NewSearchIndexRepository(db *gorm.DB, dialect database.Dialect) *SearchIndexRepository {
	return &SearchIndexRepository{db: db, dialect: dialect}
}

// UpsertProject rebuilds the index row of one project. It returns 1 when the
// project exists and was indexed, 0 when it does not exist; in that case a
// leftover row for the id is removed.
func (r *SearchIndexRepository) UpsertProject(ctx context.Context, projectID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.dialect.LockIndex(tx, model.ProjectSearchTable); err != nil {
			return fmt.Errorf("lock %s: %w", model.ProjectSearchTable, err)
		}

		var project model.Project
		err := tx.First(&project, "id = ?", projectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Where("project_id = ?", projectID).Delete(&model.ProjectSearch{}).Error
		}
		if err != nil {
			return fmt.Errorf("load project %d: %w", projectID, err)
		}

		entry := projectEntry(project)
		res := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry)
		if res.Error != nil {
			return fmt.Errorf("write project entry %d: %w", projectID, res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// UpsertFreelancer rebuilds the index row of one freelancer from the profile,
// its skills, the owning member's status and the review average. A
// freelancer without a member row counts as missing.
func (r *SearchIndexRepository) UpsertFreelancer(ctx context.Context, freelancerID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.dialect.LockIndex(tx, model.FreelancerSearchTable); err != nil {
			return fmt.Errorf("lock %s: %w", model.FreelancerSearchTable, err)
		}

		var freelancer model.Freelancer
		err := tx.Preload("Skills").First(&freelancer, "id = ?", freelancerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Where("freelancer_id = ?", freelancerID).Delete(&model.FreelancerSearch{}).Error
		}
		if err != nil {
			return fmt.Errorf("load freelancer %d: %w", freelancerID, err)
		}

		var member model.Member
		err = tx.First(&member, "id = ?", freelancerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Where("freelancer_id = ?", freelancerID).Delete(&model.FreelancerSearch{}).Error
		}
		if err != nil {
			return fmt.Errorf("load member %d: %w", freelancerID, err)
		}

		var avg sql.NullFloat64
		err = tx.Model(&model.Review{}).
			Select("AVG(rating)").
			Where("freelancer_id = ?", freelancerID).
			Scan(&avg).Error
		if err != nil {
			return fmt.Errorf("load rating of %d: %w", freelancerID, err)
		}

		entry := freelancerEntry(freelancer, member.Status, nullableFloat(avg))
		res := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry)
		if res.Error != nil {
			return fmt.Errorf("write freelancer entry %d: %w", freelancerID, res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// RebuildProjects empties project_search and repopulates it from projects in
// one transaction. Concurrent readers keep seeing the previous contents
// until it commits.
func (r *SearchIndexRepository) RebuildProjects(ctx context.Context) (int64, error) {
	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.dialect.LockIndex(tx, model.ProjectSearchTable); err != nil {
			return fmt.Errorf("lock %s: %w", model.ProjectSearchTable, err)
		}
		if err := tx.Exec("DELETE FROM " + model.ProjectSearchTable).Error; err != nil {
			return fmt.Errorf("clear %s: %w", model.ProjectSearchTable, err)
		}

		writer := tx.Session(&gorm.Session{NewDB: true})
		var batch []model.Project
		res := tx.Model(&model.Project{}).FindInBatches(&batch, rebuildBatchSize, func(_ *gorm.DB, _ int) error {
			entries := make([]model.ProjectSearch, 0, len(batch))
			for _, p := range batch {
				entries = append(entries, projectEntry(p))
			}
			if len(entries) == 0 {
				return nil
			}
			if err := writer.Create(&entries).Error; err != nil {
				return err
			}
			written += int64(len(entries))
			return nil
		})
		if res.Error != nil {
			return fmt.Errorf("repopulate %s: %w", model.ProjectSearchTable, res.Error)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// RebuildFreelancers is RebuildProjects for freelancer_search.
func (r *SearchIndexRepository) RebuildFreelancers(ctx context.Context) (int64, error) {
	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.dialect.LockIndex(tx, model.FreelancerSearchTable); err != nil {
			return fmt.Errorf("lock %s: %w", model.FreelancerSearchTable, err)
		}
		if err := tx.Exec("DELETE FROM " + model.FreelancerSearchTable).Error; err != nil {
			return fmt.Errorf("clear %s: %w", model.FreelancerSearchTable, err)
		}

		ratings, err := ratingAverages(tx)
		if err != nil {
			return err
		}

		writer := tx.Session(&gorm.Session{NewDB: true})
		var batch []model.Freelancer
		res := tx.Model(&model.Freelancer{}).Preload("Skills").FindInBatches(&batch, rebuildBatchSize, func(_ *gorm.DB, _ int) error {
			ids := make([]uint, 0, len(batch))
			for _, f := range batch {
				ids = append(ids, f.ID)
			}
			var members []model.Member
			if err := writer.Where("id IN ?", ids).Find(&members).Error; err != nil {
				return err
			}
			status := make(map[uint]string, len(members))
			for _, m := range members {
				status[m.ID] = m.Status
			}

			entries := make([]model.FreelancerSearch, 0, len(batch))
			for _, f := range batch {
				s, ok := status[f.ID]
				if !ok {
					continue
				}
				entries = append(entries, freelancerEntry(f, s, ratings[f.ID]))
			}
			if len(entries) == 0 {
				return nil
			}
			if err := writer.Create(&entries).Error; err != nil {
				return err
			}
			written += int64(len(entries))
			return nil
		})
		if res.Error != nil {
			return fmt.Errorf("repopulate %s: %w", model.FreelancerSearchTable, res.Error)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// FindProjectEntry returns the index row of a project, or nil when the
// project is not indexed.
func (r *SearchIndexRepository) FindProjectEntry(ctx context.Context, projectID uint) (*model.ProjectSearch, error) {
	var entry model.ProjectSearch
	err := r.db.WithContext(ctx).First(&entry, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindFreelancerEntry returns the index row of a freelancer, or nil when the
// freelancer is not indexed.
func (r *SearchIndexRepository) FindFreelancerEntry(ctx context.Context, freelancerID uint) (*model.FreelancerSearch, error) {
	var entry model.FreelancerSearch
	err := r.db.WithContext(ctx).First(&entry, "freelancer_id = ?", freelancerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SearchIndexRepository) CountProjectEntries(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProjectSearch{}).Count(&n).Error
	return n, err
}

func (r *SearchIndexRepository) CountFreelancerEntries(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FreelancerSearch{}).Count(&n).Error
	return n, err
}

func projectEntry(p model.Project) model.ProjectSearch {
	return model.ProjectSearch{
		ProjectID:          p.ID,
		Title:              p.Title,
		Summary:            p.Summary,
		Duration:           p.Duration,
		Price:              p.Price,
		Status:             p.Status,
		Description:        p.Description,
		PreferredCondition: p.PreferredCondition,
		WorkingCondition:   p.WorkingCondition,
	}
}

func freelancerEntry(f model.Freelancer, memberStatus string, rating *float64) model.FreelancerSearch {
	return model.FreelancerSearch{
		FreelancerID: f.ID,
		Status:       memberStatus,
		Job:          f.Job,
		Comment:      f.Comment,
		Career:       matching.FlattenCareer(string(f.Career)),
		TechStack:    techStack(f.Skills),
		RatingAvg:    rating,
	}
}

// techStack joins skill names sorted by name so the entry does not depend on
// join-table order.
func techStack(skills []model.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

type ratingRow struct {
	FreelancerID uint
	Avg          float64
}

func ratingAverages(tx *gorm.DB) (map[uint]*float64, error) {
	var rows []ratingRow
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.Review{}).
		Select("freelancer_id, AVG(rating) AS avg").
		Group("freelancer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load rating averages: %w", err)
	}
	out := make(map[uint]*float64, len(rows))
	for _, row := range rows {
		avg := row.Avg
		out[row.FreelancerID] = &avg
	}
	return out, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
