package handlers

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskman/internal/pdf"
	"taskman/internal/services"
)

type ReportHandler struct {
	tasks services.TaskService
	gen   pdf.Generator
}

func NewReportHandler(tasks services.TaskService, gen pdf.Generator) *ReportHandler {
	return &ReportHandler{tasks: tasks, gen: gen}
}

// TasksPDF renders the current task list (with the same filter parameters
// as the list endpoint) as a downloadable PDF.
func (h *ReportHandler) TasksPDF(c *gin.Context) {
	filter := parseTaskFilter(c)

	tasks, err := h.tasks.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[report][tasks][err] %v", err)
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.gen.TaskReport(&buf, tasks); err != nil {
		log.Printf("[report][tasks][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	filename := "tasks-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
