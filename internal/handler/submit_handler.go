package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
	"github.com/luoteng/stuinfo-backend/internal/response"
	"github.com/luoteng/stuinfo-backend/internal/service"
	"github.com/luoteng/stuinfo-backend/internal/validator"
)

// SubmitHandler handles the public registration submission endpoint.
type SubmitHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewSubmitHandler creates a new SubmitHandler.
func NewSubmitHandler(studentService *service.StudentService, log zerolog.Logger) *SubmitHandler {
	return &SubmitHandler{
		studentService: studentService,
		log:            log.With().Str("component", "submit_handler").Logger(),
	}
}

// Submit godoc
// POST /api/v1/submit
// Validates the fixed field schema, stamps id + submission time, persists
// the record. Duplicate submissions are reported per offending column.
func (h *SubmitHandler) Submit(c *gin.Context) {
	var req model.SubmitStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.studentService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateStudentID):
			response.Fail(c, http.StatusBadRequest, response.ErrDuplicateStudentID)
		case errors.Is(err, repository.ErrDuplicateIDCard):
			response.Fail(c, http.StatusBadRequest, response.ErrDuplicateIDCard)
		default:
			h.log.Error().Err(err).Msg("insert student record failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":      rec.ID,
		"message": "提交成功，感谢您的配合",
	})
}
