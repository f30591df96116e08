package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/shared/query"
	"storymap-backend/internal/shared/utils"
	"storymap-backend/pkg/database"
)

const slugConstraint = "places_slug_key"

const placeColumns = `id, name, lat, lng, slug, country, continent, description, created_at`

type postgresPlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &postgresPlaceRepository{pool: pool}
}

func (r *postgresPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	q := `
		INSERT INTO places (id, name, lat, lng, slug, country, continent, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := database.Executor(ctx, r.pool).QueryRow(ctx, q,
		place.ID,
		place.Name,
		place.Lat,
		place.Lng,
		place.Slug,
		place.Country,
		place.Continent,
		place.Description,
	).Scan(&place.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, slugConstraint) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("failed to create place: %w", err)
	}

	return nil
}

func (r *postgresPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresPlaceRepository) GetBySlug(ctx context.Context, slug string) (*model.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *postgresPlaceRepository) getOne(ctx context.Context, q string, arg any) (*model.Place, error) {
	row := database.Executor(ctx, r.pool).QueryRow(ctx, q, arg)

	place, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

func (r *postgresPlaceRepository) List(ctx context.Context, bounds *query.Bounds, limit int) ([]*model.Place, error) {
	where := &utils.WhereBuilder{}
	if bounds != nil {
		where.Add("lat BETWEEN %s AND %s", bounds.South, bounds.North)
		where.Add("lng BETWEEN %s AND %s", bounds.West, bounds.East)
	}

	q := `SELECT ` + placeColumns + ` FROM places` + where.Clause() +
		` ORDER BY name ASC, id ASC LIMIT ` + where.Next(limit)

	rows, err := database.Executor(ctx, r.pool).Query(ctx, q, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	places := make([]*model.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}

	return places, nil
}

func (r *postgresPlaceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM places WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check place: %w", err)
	}
	return exists, nil
}

func (r *postgresPlaceRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM places WHERE slug = $1)`, slug).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func scanPlace(row pgx.Row) (*model.Place, error) {
	p := &model.Place{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Lat,
		&p.Lng,
		&p.Slug,
		&p.Country,
		&p.Continent,
		&p.Description,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
