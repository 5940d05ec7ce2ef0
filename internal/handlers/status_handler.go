package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/models"
	"taskman/internal/services"
)

type StatusHandler struct {
	service services.StatusService
}

func NewStatusHandler(service services.StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

type statusRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// GET /api/task_statuses
func (h *StatusHandler) GetAll(c *gin.Context) {
	statuses, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[status][list][err] %v", err)
		respondError(c, err)
		return
	}
	if statuses == nil {
		statuses = []models.TaskStatus{}
	}
	c.Header("X-Total-Count", strconv.Itoa(len(statuses)))
	c.JSON(http.StatusOK, statuses)
}

// GET /api/task_statuses/:id
func (h *StatusHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	status, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[status][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Create a task status
// @Tags         Statuses
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.TaskStatus
// @Failure      422  {object}  map[string]string
// @Router       /task_statuses [post]
func (h *StatusHandler) Create(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[status][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var name, slug string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Slug != nil {
		slug = *req.Slug
	}
	status, err := h.service.Create(c.Request.Context(), name, slug)
	if err != nil {
		log.Printf("[status][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[status][create][ok] id=%d slug=%s", status.ID, status.Slug)
	c.JSON(http.StatusCreated, status)
}

// PUT /api/task_statuses/:id — sparse update.
func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[status][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := h.service.Update(c.Request.Context(), id, req.Name, req.Slug)
	if err != nil {
		log.Printf("[status][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[status][update][ok] id=%d", id)
	c.JSON(http.StatusOK, status)
}

// DELETE /api/task_statuses/:id
func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[status][delete][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[status][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
