package handler

import (
	"github.com/gin-gonic/gin"

	"storymap-backend/internal/domains/question/service"
	"storymap-backend/internal/shared/response"
)

type QuestionHandler struct {
	questionService service.ServiceInterface
}

func NewQuestionHandler(questionService service.ServiceInterface) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions returns the prompts currently offered on the submit form
// GET /api/v1/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListActiveQuestions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"questions": questions})
}
