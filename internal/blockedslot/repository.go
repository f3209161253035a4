package blockedslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *BlockedSlot) error
	GetByID(ctx context.Context, id string) (*BlockedSlot, error)
	List(ctx context.Context, filter Filter) ([]*BlockedSlot, int, error)
	// ListOverlapping returns all blocks of the tenant intersecting [from, to),
	// whole-venue blocks included. Used by conflict checks and the agenda view.
	ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*BlockedSlot, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const blockColumns = "id, tenant_id, court_name, start_time, end_time, reason, created_by, created_at"

func scanBlock(row pgx.Row) (*BlockedSlot, error) {
	var b BlockedSlot
	if err := row.Scan(
		&b.ID, &b.TenantID, &b.CourtName, &b.StartTime, &b.EndTime,
		&b.Reason, &b.CreatedBy, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *BlockedSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blocked_slots").
		Columns("tenant_id", "court_name", "start_time", "end_time", "reason", "created_by").
		Values(b.TenantID, b.CourtName, b.StartTime, b.EndTime, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blocked slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create blocked slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*BlockedSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(blockColumns).
		From("public.blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blocked slot query failed: %w", err)
	}

	b, err := scanBlock(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blocked slot failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*BlockedSlot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "tenant_id", "court_name", "start_time", "end_time",
		"reason", "created_by", "created_at",
		"count(*) OVER() as total_count",
	).From("public.blocked_slots").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.CourtName != "" {
		query = query.Where(squirrel.Eq{"court_name": filter.CourtName})
	}
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"end_time": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.Lt{"start_time": filter.To})
	}

	query = query.OrderBy("start_time ASC")

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
		return nil, 0, fmt.Errorf("build list blocked slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blocked slots failed: %w", err)
	}
	defer rows.Close()

	var blocks []*BlockedSlot
	var total int

	for rows.Next() {
		var b BlockedSlot
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.CourtName, &b.StartTime, &b.EndTime,
			&b.Reason, &b.CreatedBy, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan blocked slot failed: %w", err)
		}
		blocks = append(blocks, &b)
	}

	return blocks, total, nil
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*BlockedSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(blockColumns).
		From("public.blocked_slots").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []*BlockedSlot
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked slot failed: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete blocked slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blocked slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
