package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	placeModel "storymap-backend/internal/domains/place/model"
	"storymap-backend/internal/domains/poll/model"
)

type MockPollService struct {
	mock.Mock
}

func (m *MockPollService) SubmitPoll(ctx context.Context, placeID uuid.UUID, req model.SubmitPollRequest) error {
	return m.Called(ctx, placeID, req).Error(0)
}

func (m *MockPollService) GetResults(ctx context.Context, placeID uuid.UUID) (*model.Results, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Results), args.Error(1)
}

func setupRouter(svc *MockPollService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPollHandler(svc)
	r := gin.New()
	r.POST("/places/:id/polls", h.SubmitPoll)
	r.GET("/places/:id/polls/results", h.GetResults)
	return r
}

func TestSubmitPoll(t *testing.T) {
	placeID := uuid.New()
	svc := new(MockPollService)
	svc.On("SubmitPoll", mock.Anything, placeID, mock.Anything).Return(nil)

	body := `{"respondent":"local","values":[4,5,4,3,4,5,4,3,2,4]}`
	req := httptest.NewRequest(http.MethodPost, "/places/"+placeID.String()+"/polls", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Poll submitted successfully"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestGetResults(t *testing.T) {
	placeID := uuid.New()
	svc := new(MockPollService)
	svc.On("GetResults", mock.Anything, placeID).Return(&model.Results{
		Labels:    model.Labels[:],
		Locals:    []float64{4, 5, 4, 3, 4, 5, 4, 3, 2, 4},
		Travelers: []float64{5, 4, 5, 4, 4, 4, 5, 4, 3, 4.5},
		Counts:    model.Counts{Locals: 1, Travelers: 2},
	}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/"+placeID.String()+"/polls/results", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["labels"], model.Dimensions)
	assert.Equal(t, "Helpfulness", body["labels"].([]any)[0])
	assert.Equal(t, 4.5, body["travelers"].([]any)[9])
	assert.Equal(t, map[string]any{"locals": 1.0, "travelers": 2.0}, body["counts"])
}

func TestGetResults_Errors(t *testing.T) {
	placeID := uuid.New()
	svc := new(MockPollService)
	svc.On("GetResults", mock.Anything, placeID).Return(nil, placeModel.NewPlaceNotFoundError(placeID.String()))
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/"+placeID.String()+"/polls/results", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/nope/polls/results", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
