package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// EnsureSchema creates the custom_rules table if it is missing.
// Kept idempotent so the API and the integration tests can share it.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const table = `
create table if not exists custom_rules (
	id          uuid primary key,
	area_id     text,
	tab_id      text,
	name        text not null,
	description text not null default '',
	body        text not null,
	is_template boolean not null default false,
	created_at  timestamptz not null default now(),
	updated_at  timestamptz not null default now()
);
`
	const index = `
create index if not exists custom_rules_scope_idx on custom_rules (area_id, tab_id) where not is_template;
`
	if _, err := r.db.Exec(ctx, table); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if _, err := r.db.Exec(ctx, index); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const ruleColumns = `id, coalesce(area_id, ''), coalesce(tab_id, ''), name, description, body, is_template, created_at, updated_at`

func scanRule(row pgx.Row) (*domain.Rule, error) {
	var rule domain.Rule
	err := row.Scan(&rule.ID, &rule.AreaID, &rule.TabID, &rule.Name, &rule.Description,
		&rule.Body, &rule.IsTemplate, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListCatalog returns templates (when requested) followed by the scope's
// user rules. Order is stable (templates first, then created_at asc) so
// that "first matching user rule" activation does not jump between loads.
func (r *Repo) ListCatalog(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error) {
	const q = `
select ` + ruleColumns + `
from custom_rules
where (is_template and $3)
   or (not is_template and area_id = $1 and tab_id = $2)
order by is_template desc, created_at asc;
`
	rows, err := r.db.Query(ctx, q, scope.AreaID, scope.TabID, includeTemplates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Rule, 0, 8)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rule)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error) {
	if err := domain.ValidateBody(body); err != nil {
		return nil, err
	}

	const q = `
insert into custom_rules (id, area_id, tab_id, name, description, body, is_template)
values ($1, $2, $3, $4, $5, $6, false)
returning ` + ruleColumns + `;
`
	return scanRule(r.db.QueryRow(ctx, q, uuid.New().String(), scope.AreaID, scope.TabID, name, description, body))
}

func (r *Repo) Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error) {
	if err := domain.ValidateBody(body); err != nil {
		return nil, err
	}

	// Template rows are excluded from the match: a PUT against one reads
	// the same as a PUT against a missing id, except for the error.
	// Comparing on id::text keeps malformed ids as not-found instead of
	// a cast error.
	const q = `
update custom_rules
set name = $2, description = $3, body = $4, updated_at = now()
where id::text = $1 and not is_template
returning ` + ruleColumns + `;
`
	rule, err := scanRule(r.db.QueryRow(ctx, q, id, name, description, body))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missingOrTemplate(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	const q = `delete from custom_rules where id::text = $1 and not is_template;`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.missingOrTemplate(ctx, id)
	}
	return nil
}

// Get returns a single rule, templates included.
func (r *Repo) Get(ctx context.Context, id string) (*domain.Rule, error) {
	const q = `select ` + ruleColumns + ` from custom_rules where id::text = $1;`
	rule, err := scanRule(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// ListTemplates returns all template rules.
func (r *Repo) ListTemplates(ctx context.Context) ([]domain.Rule, error) {
	const q = `select ` + ruleColumns + ` from custom_rules where is_template order by created_at asc;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Rule, 0, 4)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rule)
	}
	return out, rows.Err()
}

// SeedTemplate inserts a template by name if no template with that name
// exists yet. Existing rows are left untouched: templates are maintained
// out-of-band and this service never rewrites their content.
func (r *Repo) SeedTemplate(ctx context.Context, name, description, body string) error {
	const q = `
insert into custom_rules (id, name, description, body, is_template)
select $1, $2, $3, $4, true
where not exists (select 1 from custom_rules where is_template and name = $2);
`
	if _, err := r.db.Exec(ctx, q, uuid.New().String(), name, description, body); err != nil {
		return fmt.Errorf("seed template %q: %w", name, err)
	}
	return nil
}

func (r *Repo) missingOrTemplate(ctx context.Context, id string) error {
	var isTemplate bool
	err := r.db.QueryRow(ctx, `select is_template from custom_rules where id::text = $1;`, id).Scan(&isTemplate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRuleNotFound
	}
	if err != nil {
		return err
	}
	if isTemplate {
		return domain.ErrTemplateImmutable
	}
	return domain.ErrRuleNotFound
}
