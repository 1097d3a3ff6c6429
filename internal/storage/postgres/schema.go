package postgres

import "database/sql"

// Schema is idempotent; Migrate can run on every deploy.
const Schema = `
create extension if not exists pgcrypto;

create table if not exists users (
    id           uuid primary key default gen_random_uuid(),
    firebase_uid text not null unique,
    email        text,
    display_name text,
    role         text,
    created_at   timestamptz not null default now(),
    updated_at   timestamptz not null default now()
);

create table if not exists projects (
    id            uuid primary key default gen_random_uuid(),
    public_id     text not null unique,
    user_id       uuid not null references users(id),
    name          text not null,
    description   text,
    tech_stack    text not null,
    current_phase text not null,
    target_phase  text not null,
    current_infra text,
    scaling_goals text[] not null default '{}',
    status        text not null default 'active',
    created_at    timestamptz not null default now(),
    updated_at    timestamptz not null default now(),
    deleted_at    timestamptz
);

create index if not exists idx_projects_user on projects (user_id) where deleted_at is null;

create table if not exists recommendations (
    id          uuid primary key default gen_random_uuid(),
    project_id  uuid not null references projects(id),
    title       text not null,
    description text not null,
    category    text not null,
    priority    text not null,
    ord         int  not null,
    created_at  timestamptz not null default now()
);

create index if not exists idx_recommendations_project on recommendations (project_id);

create table if not exists roadmap_steps (
    id          uuid primary key default gen_random_uuid(),
    project_id  uuid not null references projects(id),
    phase       text not null,
    title       text not null,
    description text not null,
    timeline    text not null,
    effort      text not null,
    step_order  int  not null,
    status      text not null default 'pending',
    created_at  timestamptz not null default now()
);

create index if not exists idx_roadmap_steps_project on roadmap_steps (project_id);

create table if not exists configurations (
    id         uuid primary key default gen_random_uuid(),
    project_id uuid not null references projects(id),
    type       text not null,
    name       text not null,
    content    text not null,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now(),
    unique (project_id, type)
);

create table if not exists compliance_checks (
    id          uuid primary key default gen_random_uuid(),
    project_id  uuid not null references projects(id),
    title       text not null,
    description text not null,
    category    text not null,
    severity    text not null,
    status      text not null default 'pending',
    created_at  timestamptz not null default now()
);

create index if not exists idx_compliance_checks_project on compliance_checks (project_id);

create table if not exists canvas_versions (
    id             uuid primary key default gen_random_uuid(),
    project_id     uuid not null references projects(id),
    version_number int  not null,
    graph_json     jsonb not null,
    created_at     timestamptz not null default now(),
    unique (project_id, version_number)
);

create table if not exists cloud_compute_prices (
    id              uuid primary key default gen_random_uuid(),
    provider        text not null,
    sku_id          text not null,
    region          text,
    instance_type   text,
    vcpu            int,
    memory_gb       double precision,
    price_per_hour  double precision,
    currency        text,
    purchase_option text,
    fetched_at      timestamptz,
    unique (provider, sku_id)
);

create index if not exists idx_prices_provider_vcpu on cloud_compute_prices (provider, vcpu);
`

// Migrate applies the schema.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
