package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/talent-match/internal/database"
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/model"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	projectColumns = map[matching.Field]string{
		matching.FieldTitle:              "title",
		matching.FieldPreferredCondition: "preferred_condition",
		matching.FieldWorkingCondition:   "working_condition",
	}
	freelancerColumns = map[matching.Field]string{
		matching.FieldJob:       "job",
		matching.FieldCareer:    "career",
		matching.FieldTechStack: "tech_stack",
	}
)

// RankingRepository implements matching.Ranker over the search index tables.
// Only OPEN projects and ACTIVE freelancers are eligible.
type RankingRepository struct {
	db      *gorm.DB
	dialect database.Dialect
}

func NewRankingRepository(db *gorm.DB, dialect database.Dialect) *RankingRepository {
	return &RankingRepository{db: db, dialect: dialect}
}

var _ matching.Ranker = (*RankingRepository)(nil)

func (r *RankingRepository) RankProjects(ctx context.Context, q matching.RankQuery) ([]matching.ScoredProject, int64, error) {
	stmt, err := r.build(rankTable{
		name:    model.ProjectSearchTable,
		id:      "project_id",
		columns: projectColumns,
		status:  model.ProjectStatusOpen,
		selects: []string{"project_id", "title", "summary", "duration", "price", "status"},
	}, q)
	if err != nil {
		return nil, 0, err
	}

	var items []matching.ScoredProject
	total, err := r.run(ctx, stmt, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RankingRepository) RankFreelancers(ctx context.Context, q matching.RankQuery) ([]matching.ScoredFreelancer, int64, error) {
	stmt, err := r.build(rankTable{
		name:    model.FreelancerSearchTable,
		id:      "freelancer_id",
		columns: freelancerColumns,
		status:  model.MemberStatusActive,
		selects: []string{"freelancer_id", "job", "comment", "tech_stack", "rating_avg"},
	}, q)
	if err != nil {
		return nil, 0, err
	}

	var items []matching.ScoredFreelancer
	total, err := r.run(ctx, stmt, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type rankTable struct {
	name    string
	id      string
	columns map[matching.Field]string
	status  string
	selects []string
}

// col qualifies a column of the index table; the dialect may join a text
// index that shares column names.
func (t rankTable) col(name string) string {
	return t.name + "." + name
}

type rankStatement struct {
	pageSQL   string
	pageArgs  []any
	countSQL  string
	countArgs []any
}

func (r *RankingRepository) build(t rankTable, q matching.RankQuery) (rankStatement, error) {
	if len(q.Fields) == 0 {
		return rankStatement{}, errors.New("rank query has no fields")
	}

	fields := make([]database.FieldMatch, 0, len(q.Fields))
	for _, f := range q.Fields {
		col, ok := t.columns[f.Field]
		if !ok {
			return rankStatement{}, fmt.Errorf("%w: %q on %s", matching.ErrUnknownField, f.Field, t.name)
		}
		fields = append(fields, database.FieldMatch{Column: col, Query: f.Query, Weight: f.Weight})
	}
	match, err := r.dialect.TextMatch(t.name, fields)
	if err != nil {
		return rankStatement{}, err
	}

	score := match.Score
	if q.Boost != nil {
		score = fmt.Sprintf("%s * (%s + %s * %s)",
			score,
			database.FloatLiteral(q.Boost.Floor),
			database.FloatLiteral(q.Boost.Slope),
			clampedRating(t.col("rating_avg"), q.Boost.DefaultRating),
		)
	}

	selects := make([]string, len(t.selects))
	for i, c := range t.selects {
		selects[i] = t.col(c)
	}
	from := t.name
	if match.Join != "" {
		from += " " + match.Join
	}
	where := fmt.Sprintf("%s = ? AND %s", t.col("status"), match.Predicate)
	whereArgs := append([]any{t.status}, match.PredicateArgs...)

	pageSQL := fmt.Sprintf(
		"SELECT %s, %s AS score FROM %s WHERE %s ORDER BY score DESC, %s ASC LIMIT ? OFFSET ?",
		strings.Join(selects, ", "), score, from, where, t.col(t.id),
	)
	pageArgs := append(append(append([]any{}, match.ScoreArgs...), whereArgs...), q.Limit, q.Offset)

	return rankStatement{
		pageSQL:   pageSQL,
		pageArgs:  pageArgs,
		countSQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", from, where),
		countArgs: whereArgs,
	}, nil
}

// run fetches the page and the eligible total concurrently. Both read the
// same predicate; under concurrent index writes they may observe different
// snapshots.
func (r *RankingRepository) run(ctx context.Context, stmt rankStatement, dest any) (int64, error) {
	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.WithContext(gctx).Raw(stmt.pageSQL, stmt.pageArgs...).Scan(dest).Error; err != nil {
			return fmt.Errorf("rank page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.WithContext(gctx).Raw(stmt.countSQL, stmt.countArgs...).Scan(&total).Error; err != nil {
			return fmt.Errorf("rank count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

// clampedRating substitutes the default for missing ratings and clamps the
// rest into the rating range.
func clampedRating(column string, defaultRating float64) string {
	return fmt.Sprintf(
		"(CASE WHEN %[1]s IS NULL THEN %[2]s WHEN %[1]s < %[3]s THEN %[3]s WHEN %[1]s > %[4]s THEN %[4]s ELSE %[1]s END)",
		column,
		database.FloatLiteral(matching.ClampRating(defaultRating)),
		database.FloatLiteral(matching.MinRating),
		database.FloatLiteral(matching.MaxRating),
	)
}
