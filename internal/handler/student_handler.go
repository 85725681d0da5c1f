package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
	"github.com/luoteng/stuinfo-backend/internal/response"
	"github.com/luoteng/stuinfo-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentHandler handles the admin-facing listing and export endpoints.
type StudentHandler struct {
	studentService *service.StudentService
	exportService  *service.ExportService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, exportService *service.ExportService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		exportService:  exportService,
		log:            log.With().Str("component", "student_handler").Logger(),
	}
}

// ListStudents godoc
// GET /api/v1/admin/students?search=&major=
// Returns the filtered records newest-first plus the aggregates.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	filter := model.StudentFilter{
		Search: c.Query("search"),
		Major:  c.Query("major"),
	}

	records, stats, err := h.studentService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("list student records failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	data := gin.H{
		"students":    records,
		"total":       stats.Total,
		"today_count": stats.TodayCount,
	}
	// Omitted entirely while the store is empty.
	if stats.LastSubmit != nil {
		data["last_submission_time"] = stats.LastSubmit
	}
	response.Success(c, http.StatusOK, data)
}

// GetStudent godoc
// GET /api/v1/admin/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	rec, err := h.studentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("get student record failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": rec})
}

// ExportStudents godoc
// GET /api/v1/admin/export
// Streams the full record set as a one-sheet xlsx attachment with a
// date-stamped filename. An empty store still yields a valid workbook.
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	buf, err := h.exportService.Export(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("export workbook failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := h.exportService.Filename()
	// RFC 5987 encoding for the localized filename, with an ASCII fallback.
	c.Header("Content-Disposition", fmt.Sprintf(
		`attachment; filename="students.xlsx"; filename*=UTF-8''%s`,
		url.PathEscape(filename),
	))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
