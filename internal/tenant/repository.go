package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context, filter Filter) ([]*Tenant, int, error)
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, tenantID, userID string) (*Member, error)
	AddMember(ctx context.Context, tenantID, userID, role string) error
	RemoveMember(ctx context.Context, tenantID, userID string) error
	UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error
	ListMembers(ctx context.Context, tenantID string, filter MemberFilter) ([]*Member, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const tenantColumns = "id, name, slug, establishment_type, revenue_model, opening_hours, court_config, is_active, created_at, updated_at"

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	var courtsJSON []byte
	if err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.EstablishmentType, &t.RevenueModel,
		&t.OpeningHours, &courtsJSON, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(courtsJSON) > 0 {
		if err := json.Unmarshal(courtsJSON, &t.Courts); err != nil {
			return nil, fmt.Errorf("unmarshal court_config for tenant %s failed: %w", t.ID, err)
		}
	}
	return &t, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Tenant) error {
	courtsJSON, err := json.Marshal(t.Courts)
	if err != nil {
		return fmt.Errorf("marshal court_config failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.tenants").
		Columns("name", "slug", "establishment_type", "revenue_model", "opening_hours", "court_config", "is_active").
		Values(t.Name, t.Slug, t.EstablishmentType, t.RevenueModel, t.OpeningHours, courtsJSON, t.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create tenant query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugTaken
		}
		return fmt.Errorf("create tenant failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(tenantColumns).
		From("public.tenants").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tenant query failed: %w", err)
	}

	t, err := scanTenant(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(tenantColumns).
		From("public.tenants").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tenant by slug query failed: %w", err)
	}

	t, err := scanTenant(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant by slug failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Tenant, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "slug", "establishment_type", "revenue_model",
		"opening_hours", "court_config", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.tenants")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"slug": "%" + filter.Keyword + "%"},
		})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	query = query.OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list tenants query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants failed: %w", err)
	}
	defer rows.Close()

	var tenants []*Tenant
	var total int

	for rows.Next() {
		var t Tenant
		var courtsJSON []byte
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.EstablishmentType, &t.RevenueModel,
			&t.OpeningHours, &courtsJSON, &t.IsActive, &t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan tenant failed: %w", err)
		}
		if len(courtsJSON) > 0 {
			if err := json.Unmarshal(courtsJSON, &t.Courts); err != nil {
				return nil, 0, fmt.Errorf("unmarshal court_config for tenant %s failed: %w", t.ID, err)
			}
		}
		tenants = append(tenants, &t)
	}

	return tenants, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Tenant) error {
	courtsJSON, err := json.Marshal(t.Courts)
	if err != nil {
		return fmt.Errorf("marshal court_config failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.tenants").
		Set("name", t.Name).
		Set("establishment_type", t.EstablishmentType).
		Set("revenue_model", t.RevenueModel).
		Set("opening_hours", t.OpeningHours).
		Set("court_config", courtsJSON).
		Set("is_active", t.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tenant query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tenant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.tenants").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tenant query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tenant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetMember(ctx context.Context, tenantID, userID string) (*Member, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("tm.user_id", "u.email", "u.display_name", "tm.role", "tm.is_active").
		From("public.tenant_memberships tm").
		Join("public.users u ON tm.user_id = u.id").
		Where(squirrel.Eq{"tm.tenant_id": tenantID, "tm.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get member query failed: %w", err)
	}

	var m Member
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role, &m.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotMember
		}
		return nil, fmt.Errorf("get member failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) AddMember(ctx context.Context, tenantID, userID, role string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.tenant_memberships").
		Columns("tenant_id", "user_id", "role", "is_active").
		Values(tenantID, userID, role, true).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add member query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserAlreadyMember
		}
		return fmt.Errorf("add member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveMember(ctx context.Context, tenantID, userID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.tenant_memberships").
		Where(squirrel.Eq{"tenant_id": tenantID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove member query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotMember
	}
	return nil
}

func (r *pgxRepository) UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.tenant_memberships").
		Set("role", role).
		Where(squirrel.Eq{"tenant_id": tenantID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update member role query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update member role failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotMember
	}
	return nil
}

func (r *pgxRepository) ListMembers(ctx context.Context, tenantID string, filter MemberFilter) ([]*Member, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"tm.user_id", "u.email", "u.display_name", "tm.role", "tm.is_active",
		"count(*) OVER() as total_count",
	).
		From("public.tenant_memberships tm").
		Join("public.users u ON tm.user_id = u.id").
		Where(squirrel.Eq{"tm.tenant_id": tenantID})

	if filter.Role != "" {
		query = query.Where(squirrel.Eq{"tm.role": filter.Role})
	}

	query = query.OrderBy("u.email ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list members failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	var total int

	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role, &m.IsActive, &total); err != nil {
			return nil, 0, fmt.Errorf("scan member failed: %w", err)
		}
		members = append(members, &m)
	}

	return members, total, nil
}
