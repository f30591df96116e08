package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storymap-backend/internal/domains/story/model"
	"storymap-backend/pkg/database"
)

// storySelect reads a story together with its place link. The inner join
// keeps unlinked (orphan) rows invisible to every read.
const storySelect = `
	SELECT
		s.id, sp.place_id, s.answer_text, s.question_id, s.tags, s.photos,
		s.audio_url, s.submitter_email, s.status,
		s.votes_score, s.upvotes_count, s.downvotes_count,
		s.created_at, s.published_at
	FROM stories s
	JOIN story_places sp ON sp.story_id = s.id
`

type postgresStoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStoryRepository(pool *pgxpool.Pool) StoryRepository {
	return &postgresStoryRepository{pool: pool}
}

// =====================================================
// SUBMISSION
// =====================================================

func (r *postgresStoryRepository) Create(ctx context.Context, story *model.Story) error {
	q := `
		INSERT INTO stories (
			id, answer_text, question_id, tags, photos,
			audio_url, submitter_email, status,
			votes_score, upvotes_count, downvotes_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0)
		RETURNING created_at
	`

	err := database.Executor(ctx, r.pool).QueryRow(ctx, q,
		story.ID,
		story.AnswerText,
		story.QuestionID,
		tagsToStrings(story.Tags),
		story.Photos,
		story.AudioURL,
		story.SubmitterEmail,
		string(story.Status),
	).Scan(&story.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

func (r *postgresStoryRepository) LinkPlace(ctx context.Context, storyID, placeID uuid.UUID) error {
	_, err := database.Executor(ctx, r.pool).Exec(ctx,
		`INSERT INTO story_places (story_id, place_id) VALUES ($1, $2)`,
		storyID, placeID,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrLinkFailed, err)
	}
	return nil
}

func (r *postgresStoryRepository) DeleteOrphan(ctx context.Context, storyID uuid.UUID) (bool, error) {
	tag, err := database.Executor(ctx, r.pool).Exec(ctx, `
		DELETE FROM stories s
		WHERE s.id = $1
		  AND NOT EXISTS (SELECT 1 FROM story_places sp WHERE sp.story_id = s.id)
	`, storyID)
	if err != nil {
		return false, fmt.Errorf("failed to delete orphan story: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// =====================================================
// READS
// =====================================================

func (r *postgresStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	row := database.Executor(ctx, r.pool).QueryRow(ctx, storySelect+` WHERE s.id = $1`, id)

	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

func (r *postgresStoryRepository) ListByPlace(ctx context.Context, params model.ListStoriesParams) ([]*model.Story, int, error) {
	db := database.Executor(ctx, r.pool)

	var total int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM stories s
		JOIN story_places sp ON sp.story_id = s.id
		WHERE sp.place_id = $1 AND s.status = $2
	`, params.PlaceID, string(params.Status)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stories: %w", err)
	}

	rows, err := db.Query(ctx, storySelect+`
		WHERE sp.place_id = $1 AND s.status = $2
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $3 OFFSET $4
	`, params.PlaceID, string(params.Status), params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	stories, err := collectStories(rows)
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (r *postgresStoryRepository) ListByStatus(ctx context.Context, status model.Status, limit, offset int) ([]*model.Story, int, error) {
	db := database.Executor(ctx, r.pool)

	var total int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM stories s
		JOIN story_places sp ON sp.story_id = s.id
		WHERE s.status = $1
	`, string(status)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stories: %w", err)
	}

	rows, err := db.Query(ctx, storySelect+`
		WHERE s.status = $1
		ORDER BY s.created_at ASC, s.id ASC
		LIMIT $2 OFFSET $3
	`, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	stories, err := collectStories(rows)
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

// =====================================================
// MODERATION & VOTES
// =====================================================

func (r *postgresStoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, tr model.Transition, at time.Time) (*model.Story, error) {
	tag, err := database.Executor(ctx, r.pool).Exec(ctx, `
		UPDATE stories
		SET status = $3,
		    published_at = CASE WHEN $3 = 'approved' THEN COALESCE(published_at, $4) ELSE published_at END
		WHERE id = $1 AND status = $2
	`, id, string(tr.From), string(tr.To), at)
	if err != nil {
		return nil, fmt.Errorf("failed to update story status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrStatusChanged
	}

	return r.GetByID(ctx, id)
}

func (r *postgresStoryRepository) Vote(ctx context.Context, id uuid.UUID, direction model.VoteDirection) (*model.Story, error) {
	up, down, delta := 1, 0, 1
	if direction == model.VoteDown {
		up, down, delta = 0, 1, -1
	}

	tag, err := database.Executor(ctx, r.pool).Exec(ctx, `
		UPDATE stories
		SET upvotes_count = upvotes_count + $2,
		    downvotes_count = downvotes_count + $3,
		    votes_score = votes_score + $4
		WHERE id = $1 AND status = 'approved'
	`, id, up, down, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to vote on story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrStoryNotFound
	}

	return r.GetByID(ctx, id)
}

// =====================================================
// MAINTENANCE
// =====================================================

func (r *postgresStoryRepository) ListOrphanIDs(ctx context.Context, olderThan time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := database.Executor(ctx, r.pool).Query(ctx, `
		SELECT s.id
		FROM stories s
		WHERE s.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM story_places sp WHERE sp.story_id = s.id)
		ORDER BY s.created_at ASC
		LIMIT $2
	`, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphan stories: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan orphan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =====================================================
// HELPERS
// =====================================================

func collectStories(rows pgx.Rows) ([]*model.Story, error) {
	stories := make([]*model.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stories: %w", err)
	}
	return stories, nil
}

func scanStory(row pgx.Row) (*model.Story, error) {
	s := &model.Story{}
	var (
		tags   []string
		status string
	)

	err := row.Scan(
		&s.ID,
		&s.PlaceID,
		&s.AnswerText,
		&s.QuestionID,
		&tags,
		&s.Photos,
		&s.AudioURL,
		&s.SubmitterEmail,
		&status,
		&s.VotesScore,
		&s.UpvotesCount,
		&s.DownvotesCount,
		&s.CreatedAt,
		&s.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = model.Status(status)
	s.Tags = make([]model.StoryTag, len(tags))
	for i, t := range tags {
		s.Tags[i] = model.StoryTag(t)
	}
	if s.Photos == nil {
		s.Photos = []string{}
	}
	return s, nil
}

func tagsToStrings(tags []model.StoryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
