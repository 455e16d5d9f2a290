package store

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-api/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const projectColumns = `id, title, description, image_url, video_url, github_url, created_at, updated_at`

// PostgresStore implements ProjectStore on database/sql with the pgx driver.
type PostgresStore struct {
	db    *sql.DB
	clock Clock
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB, opts ...Option) *PostgresStore {
	o := buildOptions(opts)
	return &PostgresStore{db: db, clock: o.clock}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p      models.Project
		video  sql.NullString
		github sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &video, &github, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if video.Valid {
		p.VideoURL = &video.String
	}
	if github.Valid {
		p.GithubURL = &github.String
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (s *PostgresStore) Create(ctx context.Context, in models.CreateProjectRequest) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrap("create", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := s.clock.Now()
	p, err := scanProject(tx.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, image_url, video_url, github_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+projectColumns,
		in.Title, in.Description, in.ImageURL,
		models.NullIfEmpty(in.VideoURL), models.NullIfEmpty(in.GithubURL), now))
	if err != nil {
		return nil, wrap("create", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, wrap("create", err)
	}
	return p, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get", err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context, opts ListOptions) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects` + orderByClause(ParseSort(opts.Sort))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("list", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, wrap("list", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list", err)
	}
	return projects, nil
}

// Update locks the row, merges the supplied fields and writes the result back
// in a single transaction. An empty patch still refreshes updated_at.
// An unknown id is ErrNotFound whatever the patch holds.
func (s *PostgresStore) Update(ctx context.Context, id int64, patch models.UpdateProjectRequest) (*models.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrap("update", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	current, err := scanProject(tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("update", err)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	patch.Apply(current)
	current.UpdatedAt = Touch(current.CreatedAt, s.clock.Now())

	out, err := scanProject(tx.QueryRowContext(ctx, `
		UPDATE projects
		SET title = $1, description = $2, image_url = $3, video_url = $4, github_url = $5, updated_at = $6
		WHERE id = $7
		RETURNING `+projectColumns,
		current.Title, current.Description, current.ImageURL,
		current.VideoURL, current.GithubURL, current.UpdatedAt, id))
	if err != nil {
		return nil, wrap("update", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, wrap("update", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("delete", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return wrap("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return wrap("delete", tx.Commit())
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return wrap("ping", s.db.PingContext(ctx))
}
