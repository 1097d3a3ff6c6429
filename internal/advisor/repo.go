package advisor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/compliance"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/configgen"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/recommend"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor/roadmap"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ownedProjectID resolves a public project id to its internal id, enforcing
// ownership and liveness in one query.
func ownedProjectID(ctx context.Context, q querier, userDBID, publicID string, lock bool) (string, error) {
	sql := `
select id::text from projects
where public_id = $1 and user_id = $2::uuid and deleted_at is null`
	if lock {
		sql += " for update"
	}

	var id string
	if err := q.QueryRow(ctx, sql, publicID, userDBID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", projects.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// replace runs fn inside a transaction after clearing the given table for the
// project. All regenerate-style writes share this shape.
func (r *Repo) replace(ctx context.Context, userDBID, publicID, deleteSQL string, fn func(tx pgx.Tx, projectID string) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	projectID, err := ownedProjectID(ctx, tx, userDBID, publicID, true)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, deleteSQL, projectID); err != nil {
		return err
	}

	if err := fn(tx, projectID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) ReplaceRecommendations(ctx context.Context, userDBID, publicID string, recs []recommend.Recommendation) error {
	const del = `delete from recommendations where project_id = $1::uuid;`
	const ins = `
insert into recommendations (project_id, title, description, category, priority, ord)
values ($1::uuid, $2, $3, $4, $5, $6);`

	return r.replace(ctx, userDBID, publicID, del, func(tx pgx.Tx, projectID string) error {
		for _, rec := range recs {
			if _, err := tx.Exec(ctx, ins, projectID, rec.Title, rec.Description, rec.Category, rec.Priority, rec.Order); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListRecommendations(ctx context.Context, userDBID, publicID string) ([]StoredRecommendation, error) {
	if _, err := ownedProjectID(ctx, r.db, userDBID, publicID, false); err != nil {
		return nil, err
	}

	const q = `
select r.id::text, r.title, r.description, r.category, r.priority, r.ord, r.created_at
from recommendations r
join projects p on p.id = r.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by r.ord;`

	rows, err := r.db.Query(ctx, q, publicID, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredRecommendation, 0, 8)
	for rows.Next() {
		var s StoredRecommendation
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Priority, &s.Order, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ReplaceRoadmap(ctx context.Context, userDBID, publicID string, steps []roadmap.Step) error {
	const del = `delete from roadmap_steps where project_id = $1::uuid;`
	const ins = `
insert into roadmap_steps (project_id, phase, title, description, timeline, effort, step_order, status)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8);`

	return r.replace(ctx, userDBID, publicID, del, func(tx pgx.Tx, projectID string) error {
		for _, st := range steps {
			if _, err := tx.Exec(ctx, ins, projectID, st.Phase, st.Title, st.Description, st.Timeline, st.Effort, st.Order, st.Status); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListRoadmap(ctx context.Context, userDBID, publicID string) ([]StoredStep, error) {
	if _, err := ownedProjectID(ctx, r.db, userDBID, publicID, false); err != nil {
		return nil, err
	}

	const q = `
select s.id::text, s.phase, s.title, s.description, s.timeline, s.effort, s.step_order, s.status, s.created_at
from roadmap_steps s
join projects p on p.id = s.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by s.step_order;`

	rows, err := r.db.Query(ctx, q, publicID, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredStep, 0, 8)
	for rows.Next() {
		var s StoredStep
		if err := rows.Scan(&s.ID, &s.Phase, &s.Title, &s.Description, &s.Timeline, &s.Effort, &s.Order, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertConfigurations keeps at most one row per (project, type); content is
// always the latest generation.
func (r *Repo) UpsertConfigurations(ctx context.Context, userDBID, publicID string, arts []configgen.Artifact) error {
	const ins = `
insert into configurations (project_id, type, name, content)
values ($1::uuid, $2, $3, $4)
on conflict (project_id, type) do update
set name = excluded.name, content = excluded.content, updated_at = now();`

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	projectID, err := ownedProjectID(ctx, tx, userDBID, publicID, true)
	if err != nil {
		return err
	}

	for _, a := range arts {
		if _, err := tx.Exec(ctx, ins, projectID, a.Type, a.Name, a.Content); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) ListConfigurations(ctx context.Context, userDBID, publicID string) ([]StoredConfiguration, error) {
	if _, err := ownedProjectID(ctx, r.db, userDBID, publicID, false); err != nil {
		return nil, err
	}

	const q = `
select c.id::text, c.type, c.name, c.content, c.created_at, c.updated_at
from configurations c
join projects p on p.id = c.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by c.type;`

	rows, err := r.db.Query(ctx, q, publicID, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredConfiguration, 0, 8)
	for rows.Next() {
		var s StoredConfiguration
		if err := rows.Scan(&s.ID, &s.Type, &s.Name, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ReplaceComplianceChecks(ctx context.Context, userDBID, publicID string, checks []compliance.Check) error {
	const del = `delete from compliance_checks where project_id = $1::uuid;`
	const ins = `
insert into compliance_checks (project_id, title, description, category, severity, status)
values ($1::uuid, $2, $3, $4, $5, $6);`

	return r.replace(ctx, userDBID, publicID, del, func(tx pgx.Tx, projectID string) error {
		for _, ch := range checks {
			if _, err := tx.Exec(ctx, ins, projectID, ch.Title, ch.Description, ch.Category, ch.Severity, ch.Status); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListComplianceChecks(ctx context.Context, userDBID, publicID string) ([]StoredCheck, error) {
	if _, err := ownedProjectID(ctx, r.db, userDBID, publicID, false); err != nil {
		return nil, err
	}

	const q = `
select c.id::text, c.title, c.description, c.category, c.severity, c.status, c.created_at
from compliance_checks c
join projects p on p.id = c.project_id
where p.public_id = $1 and p.user_id = $2::uuid and p.deleted_at is null
order by c.created_at, c.id;`

	rows, err := r.db.Query(ctx, q, publicID, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredCheck, 0, 8)
	for rows.Next() {
		var s StoredCheck
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Severity, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
