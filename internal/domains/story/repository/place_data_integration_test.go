//go:build integration

package repository_test

import (
	"github.com/google/uuid"

	pollModel "storymap-backend/internal/domains/poll/model"
	pollRepo "storymap-backend/internal/domains/poll/repository"
	traceModel "storymap-backend/internal/domains/trace/model"
	traceRepo "storymap-backend/internal/domains/trace/repository"
)

func strPtr(s string) *string { return &s }

func (s *StoryRepositorySuite) TestTraceTitleFallsBackToHostUntilEnriched() {
	place := s.newPlace("berlin")
	traces := traceRepo.NewPostgresTraceRepository(s.pool)

	created, err := traces.Create(s.ctx, &traceModel.NewTrace{
		PlaceID: place.ID,
		URL:     "https://blog.example.com/berlin",
		Host:    "blog.example.com",
		Image:   strPtr("https://img.example.com/own.jpg"),
	})
	s.Require().NoError(err)
	s.Require().NotNil(created.Title)
	s.Equal("blog.example.com", *created.Title)
	s.Nil(created.EnrichedAt)

	enriched, err := traces.FillMetadata(s.ctx, created.ID, traceModel.Metadata{
		Title:       "Night walk in Kreuzberg",
		Description: "",
		Image:       "https://img.example.com/fetched.jpg",
	})
	s.Require().NoError(err)
	s.Equal("Night walk in Kreuzberg", *enriched.Title)
	s.Nil(enriched.Description)
	s.Equal("https://img.example.com/own.jpg", *enriched.Image)
	s.NotNil(enriched.EnrichedAt)

	list, total, err := traces.ListByPlace(s.ctx, place.ID, 10, 0)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(created.ID, list[0].ID)
}

func (s *StoryRepositorySuite) TestPollTallyGroupsByRespondent() {
	place := s.newPlace("seoul")
	polls := pollRepo.NewPostgresPollRepository(s.pool)

	submit := func(who pollModel.Respondent, v int) {
		resp := &pollModel.PollResponse{ID: uuid.New(), PlaceID: place.ID, Respondent: who}
		for i := range resp.Values {
			resp.Values[i] = v
		}
		s.Require().NoError(polls.Create(s.ctx, resp))
	}
	submit(pollModel.RespondentLocal, 2)
	submit(pollModel.RespondentLocal, 4)
	submit(pollModel.RespondentTraveler, 7)

	tallies, err := polls.Tally(s.ctx, place.ID)
	s.Require().NoError(err)
	s.Require().Len(tallies, 2)

	for _, t := range tallies {
		switch t.Respondent {
		case pollModel.RespondentLocal:
			s.Equal(int64(2), t.Responses)
			s.Equal(int64(6), t.Sums[0])
			s.Equal(int64(6), t.Sums[pollModel.Dimensions-1])
		case pollModel.RespondentTraveler:
			s.Equal(int64(1), t.Responses)
			s.Equal(int64(7), t.Sums[3])
		}
	}
}

func (s *StoryRepositorySuite) TestPollAnswersOutOfRangeAreRejected() {
	place := s.newPlace("lima")
	polls := pollRepo.NewPostgresPollRepository(s.pool)

	resp := &pollModel.PollResponse{ID: uuid.New(), PlaceID: place.ID, Respondent: pollModel.RespondentLocal}
	resp.Values[0] = 9

	s.Error(polls.Create(s.ctx, resp))
}
