package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storymap-backend/internal/domains/question/model"
	"storymap-backend/pkg/database"
)

type postgresQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &postgresQuestionRepository{pool: pool}
}

func (r *postgresQuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	q := &model.Question{}
	err := database.Executor(ctx, r.pool).
		QueryRow(ctx, `SELECT id, text, is_active FROM questions WHERE id = $1`, id).
		Scan(&q.ID, &q.Text, &q.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

func (r *postgresQuestionRepository) ListActive(ctx context.Context) ([]*model.Question, error) {
	rows, err := database.Executor(ctx, r.pool).
		Query(ctx, `SELECT id, text, is_active FROM questions WHERE is_active ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*model.Question, 0)
	for rows.Next() {
		q := &model.Question{}
		if err := rows.Scan(&q.ID, &q.Text, &q.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
