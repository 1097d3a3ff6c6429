package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a missing project and one owned by someone else;
// callers cannot tell the difference.
var ErrNotFound = errors.New("project not found or access denied")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectCols = `public_id, name, coalesce(description,''), tech_stack, current_phase, target_phase,
coalesce(current_infra,''), scaling_goals, status, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.PublicID, &p.Name, &p.Description, &p.TechStack, &p.CurrentPhase,
		&p.TargetPhase, &p.CurrentInfra, &p.ScalingGoals, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.ScalingGoals == nil {
		p.ScalingGoals = []string{}
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, userDBID string, d Draft) (*Project, error) {
	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("sa")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, user_id, name, description, tech_stack, current_phase, target_phase, current_infra, scaling_goals, status)
values ($1, $2::uuid, $3, nullif($4,''), $5, $6, $7, nullif($8,''), $9, 'active')
returning ` + projectCols + `;`

		p, err := scanProject(r.db.QueryRow(ctx, q, publicID, userDBID, d.Name, d.Description,
			d.TechStack, d.CurrentPhase, d.TargetPhase, d.CurrentInfra, d.ScalingGoals))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	const q = `
select ` + projectCols + `
from projects
where user_id = $1::uuid and deleted_at is null
order by created_at desc;`

	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Project, error) {
	const q = `
select ` + projectCols + `
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;`

	p, err := scanProject(r.db.QueryRow(ctx, q, userDBID, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateFields carries a partial update; nil fields are left untouched.
type UpdateFields struct {
	Name         *string
	Description  *string
	TechStack    *string
	CurrentPhase *string
	TargetPhase  *string
	CurrentInfra *string
	ScalingGoals *[]string
	Status       *string
}

func (r *Repo) Update(ctx context.Context, userDBID, publicID string, u UpdateFields) (*Project, error) {
	const q = `
update projects
set name          = coalesce($3, name),
    description   = coalesce($4, description),
    tech_stack    = coalesce($5, tech_stack),
    current_phase = coalesce($6, current_phase),
    target_phase  = coalesce($7, target_phase),
    current_infra = coalesce($8, current_infra),
    scaling_goals = coalesce($9, scaling_goals),
    status        = coalesce($10, status),
    updated_at    = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectCols + `;`

	p, err := scanProject(r.db.QueryRow(ctx, q, userDBID, publicID,
		u.Name, u.Description, u.TechStack, u.CurrentPhase, u.TargetPhase, u.CurrentInfra, u.ScalingGoals, u.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;`

	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
