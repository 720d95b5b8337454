package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
)

// ProblemRepository reads and writes problems. Every method is scoped by the
// owning user; rows of other users behave as if they do not exist.
type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	FindByID(ctx context.Context, id int64, userID string) (*model.Problem, error)
	Update(ctx context.Context, id int64, userID string, patch model.ProblemPatch) (*model.Problem, error)
	Delete(ctx context.Context, id int64, userID string) error
	List(ctx context.Context, userID string, filter model.ProblemFilter) ([]model.Problem, error)
	Stats(ctx context.Context, userID string) (*model.ProblemStats, error)
}

type sqlProblemRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProblemRepository(db *sql.DB, dialect Dialect) ProblemRepository {
	return &sqlProblemRepository{db: db, dialect: dialect}
}

const problemColumns = `id, user_id, problem_number, title, slug, difficulty, category,
               description, notes, solution, created_at, updated_at`

func scanProblem(row interface{ Scan(dest ...any) error }) (*model.Problem, error) {
	var (
		p                    model.Problem
		createdAt, updatedAt dbTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.ProblemNumber, &p.Title, &p.Slug, &p.Difficulty, &p.Category,
		&p.Description, &p.Notes, &p.Solution, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	p.FillDerived()
	return &p, nil
}

func (r *sqlProblemRepository) Create(ctx context.Context, p *model.Problem) error {
	query := r.dialect.rebind(`INSERT INTO problems (user_id, problem_number, title, slug, difficulty, category,
	              description, notes, solution, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)

	now := r.dialect.now()
	ts := r.dialect.encodeTime(now)
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.ProblemNumber, p.Title, p.Slug, p.Difficulty, p.Category,
		p.Description, p.Notes, p.Solution, ts, ts,
	).Scan(&p.ID)
	if err != nil {
		if r.dialect.isForeignKeyViolation(err) {
			return fmt.Errorf("owner %s does not exist: %w", p.UserID, common.ErrNotFound)
		}
		return fmt.Errorf("problemRepository.Create: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.FillDerived()
	return nil
}

func (r *sqlProblemRepository) FindByID(ctx context.Context, id int64, userID string) (*model.Problem, error) {
	query := r.dialect.rebind(`SELECT ` + problemColumns + `
	          FROM problems WHERE id = ? AND user_id = ?`)

	problem, err := scanProblem(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("problemRepository.FindByID: %w", err)
	}
	return problem, nil
}

func (r *sqlProblemRepository) Update(ctx context.Context, id int64, userID string, patch model.ProblemPatch) (*model.Problem, error) {
	if patch.IsEmpty() {
		// Nothing to write; updated_at is left alone.
		return r.FindByID(ctx, id, userID)
	}

	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.ProblemNumber != nil {
		set("problem_number", *patch.ProblemNumber)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Difficulty != nil {
		set("difficulty", *patch.Difficulty)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.Solution != nil {
		set("solution", *patch.Solution)
	}
	set("updated_at", r.dialect.encodeTime(r.dialect.now()))
	args = append(args, id, userID)

	query := r.dialect.rebind(`UPDATE problems SET ` + strings.Join(sets, ", ") + `
	          WHERE id = ? AND user_id = ?
	          RETURNING ` + problemColumns)

	problem, err := scanProblem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("problemRepository.Update: %w", err)
	}
	return problem, nil
}

func (r *sqlProblemRepository) Delete(ctx context.Context, id int64, userID string) error {
	query := r.dialect.rebind(`DELETE FROM problems WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("problemRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("problemRepository.Delete rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *sqlProblemRepository) List(ctx context.Context, userID string, filter model.ProblemFilter) ([]model.Problem, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + problemColumns + ` FROM problems`)

	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(title %[1]s ? ESCAPE '\' OR description %[1]s ? ESCAPE '\')`, r.dialect.likeOp))
		likeTerm := "%" + escapeLike(filter.Search) + "%"
		args = append(args, likeTerm, likeTerm)
	}

	if filter.Difficulty != "" {
		conditions = append(conditions, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf(`category %s ? ESCAPE '\'`, r.dialect.likeOp))
		args = append(args, "%"+escapeLike(filter.Category)+"%")
	}

	query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	query.WriteString(" ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("problemRepository.List query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("problemRepository.List scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("problemRepository.List rows.Err: %w", err)
	}
	return problems, nil
}

func (r *sqlProblemRepository) Stats(ctx context.Context, userID string) (*model.ProblemStats, error) {
	query := r.dialect.rebind(`SELECT COUNT(*),
	              COALESCE(SUM(CASE WHEN difficulty = 'easy' THEN 1 ELSE 0 END), 0),
	              COALESCE(SUM(CASE WHEN difficulty = 'medium' THEN 1 ELSE 0 END), 0),
	              COALESCE(SUM(CASE WHEN difficulty = 'hard' THEN 1 ELSE 0 END), 0)
	          FROM problems WHERE user_id = ?`)

	stats := &model.ProblemStats{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.Total, &stats.Easy, &stats.Medium, &stats.Hard); err != nil {
		return nil, fmt.Errorf("problemRepository.Stats: %w", err)
	}
	return stats, nil
}
