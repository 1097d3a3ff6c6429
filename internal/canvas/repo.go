package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Version struct {
	ID            string          `json:"id"`
	VersionNumber int             `json:"version_number"`
	GraphJSON     json.RawMessage `json:"graph,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaveVersion appends a new canvas version for an owned project. The project
// row is locked so concurrent saves get distinct version numbers.
func (r *Repo) SaveVersion(ctx context.Context, userDBID, publicID string, g *Graph) (*Version, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var projectID string
	err = tx.QueryRow(ctx, `
select id::text from projects
where public_id = $1 and user_id = $2::uuid and deleted_at is null
for update`, publicID, userDBID).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, projects.ErrNotFound
		}
		return nil, err
	}

	var next int
	if err := tx.QueryRow(ctx, `
select coalesce(max(version_number), 0) + 1
from canvas_versions
where project_id = $1::uuid`, projectID).Scan(&next); err != nil {
		return nil, err
	}

	var v Version
	err = tx.QueryRow(ctx, `
insert into canvas_versions (project_id, version_number, graph_json)
values ($1::uuid, $2, $3)
returning id::text, version_number, graph_json, created_at`,
		projectID, next, raw).
		Scan(&v.ID, &v.VersionNumber, &v.GraphJSON, &v.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &v, nil
}

// Latest returns the newest canvas version, or projects.ErrNotFound when the
// project is missing, not owned, or has no saved canvas yet.
func (r *Repo) Latest(ctx context.Context, userDBID, publicID string) (*Version, error) {
	const q = `
select v.id::text, v.version_number, v.graph_json, v.created_at
from canvas_versions v
join projects p on p.id = v.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by v.version_number desc
limit 1;`

	var v Version
	err := r.db.QueryRow(ctx, q, publicID, userDBID).
		Scan(&v.ID, &v.VersionNumber, &v.GraphJSON, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, projects.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListVersions returns version metadata newest first, without graph bodies.
func (r *Repo) ListVersions(ctx context.Context, userDBID, publicID string) ([]Version, error) {
	const q = `
select v.id::text, v.version_number, v.created_at
from canvas_versions v
join projects p on p.id = v.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by v.version_number desc;`

	rows, err := r.db.Query(ctx, q, publicID, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Version, 0, 8)
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.VersionNumber, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
