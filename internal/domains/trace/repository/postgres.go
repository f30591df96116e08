package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storymap-backend/internal/domains/trace/model"
	"storymap-backend/pkg/database"
)

const traceColumns = `id, place_id, url, host, COALESCE(title, host), description, image, created_at, enriched_at`

type postgresTraceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTraceRepository(pool *pgxpool.Pool) TraceRepository {
	return &postgresTraceRepository{pool: pool}
}

func (r *postgresTraceRepository) Create(ctx context.Context, in *model.NewTrace) (*model.Trace, error) {
	q := `
		INSERT INTO traces (id, place_id, url, host, title, description, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + traceColumns

	row := database.Executor(ctx, r.pool).QueryRow(ctx, q,
		uuid.New(),
		in.PlaceID,
		in.URL,
		in.Host,
		in.Title,
		in.Description,
		in.Image,
	)

	trace, err := scanTrace(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace: %w", err)
	}
	return trace, nil
}

func (r *postgresTraceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trace, error) {
	q := `SELECT ` + traceColumns + ` FROM traces WHERE id = $1`

	trace, err := scanTrace(database.Executor(ctx, r.pool).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTraceNotFound
		}
		return nil, fmt.Errorf("failed to get trace: %w", err)
	}
	return trace, nil
}

func (r *postgresTraceRepository) ListByPlace(ctx context.Context, placeID uuid.UUID, limit, offset int) ([]*model.Trace, int, error) {
	db := database.Executor(ctx, r.pool)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM traces WHERE place_id = $1`, placeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count traces: %w", err)
	}

	q := `
		SELECT ` + traceColumns + `
		FROM traces
		WHERE place_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, q, placeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list traces: %w", err)
	}
	defer rows.Close()

	traces := make([]*model.Trace, 0, limit)
	for rows.Next() {
		trace, err := scanTrace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trace: %w", err)
		}
		traces = append(traces, trace)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate traces: %w", err)
	}

	return traces, total, nil
}

func (r *postgresTraceRepository) FillMetadata(ctx context.Context, id uuid.UUID, meta model.Metadata) (*model.Trace, error) {
	q := `
		UPDATE traces SET
			title       = COALESCE(title, NULLIF($2, '')),
			description = COALESCE(description, NULLIF($3, '')),
			image       = COALESCE(image, NULLIF($4, '')),
			enriched_at = NOW()
		WHERE id = $1
		RETURNING ` + traceColumns

	trace, err := scanTrace(database.Executor(ctx, r.pool).QueryRow(ctx, q, id, meta.Title, meta.Description, meta.Image))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTraceNotFound
		}
		return nil, fmt.Errorf("failed to fill trace metadata: %w", err)
	}
	return trace, nil
}

func scanTrace(row pgx.Row) (*model.Trace, error) {
	var t model.Trace
	err := row.Scan(
		&t.ID,
		&t.PlaceID,
		&t.URL,
		&t.Host,
		&t.Title,
		&t.Description,
		&t.Image,
		&t.CreatedAt,
		&t.EnrichedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
