package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storymap-backend/internal/domains/poll/model"
	"storymap-backend/pkg/database"
)

type postgresPollRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPollRepository(pool *pgxpool.Pool) PollRepository {
	return &postgresPollRepository{pool: pool}
}

func (r *postgresPollRepository) Create(ctx context.Context, resp *model.PollResponse) error {
	q := `
		INSERT INTO poll_responses (id, place_id, respondent, answers)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	answers := make([]int32, model.Dimensions)
	for i, v := range resp.Values {
		answers[i] = int32(v)
	}

	err := database.Executor(ctx, r.pool).QueryRow(ctx, q,
		resp.ID,
		resp.PlaceID,
		string(resp.Respondent),
		answers,
	).Scan(&resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create poll response: %w", err)
	}
	return nil
}

func (r *postgresPollRepository) Tally(ctx context.Context, placeID uuid.UUID) ([]model.Tally, error) {
	q := `
		SELECT p.respondent, COUNT(DISTINCT p.id), a.dim, SUM(a.value)
		FROM poll_responses p
		CROSS JOIN LATERAL unnest(p.answers) WITH ORDINALITY AS a(value, dim)
		WHERE p.place_id = $1
		GROUP BY p.respondent, a.dim
		ORDER BY p.respondent, a.dim
	`

	rows, err := database.Executor(ctx, r.pool).Query(ctx, q, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally poll responses: %w", err)
	}
	defer rows.Close()

	byRespondent := make(map[model.Respondent]*model.Tally)
	var order []model.Respondent
	for rows.Next() {
		var (
			respondent string
			responses  int64
			dim        int64
			sum        int64
		)
		if err := rows.Scan(&respondent, &responses, &dim, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan poll tally: %w", err)
		}
		if dim < 1 || dim > model.Dimensions {
			continue
		}

		key := model.Respondent(respondent)
		t, ok := byRespondent[key]
		if !ok {
			t = &model.Tally{Respondent: key}
			byRespondent[key] = t
			order = append(order, key)
		}
		t.Responses = responses
		t.Sums[dim-1] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poll tally: %w", err)
	}

	out := make([]model.Tally, 0, len(order))
	for _, key := range order {
		out = append(out, *byRespondent[key])
	}
	return out, nil
}
