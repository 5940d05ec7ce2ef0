package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/models"
	"taskman/internal/services"
)

type LabelHandler struct {
	service services.LabelService
}

func NewLabelHandler(service services.LabelService) *LabelHandler {
	return &LabelHandler{service: service}
}

type labelRequest struct {
	Name string `json:"name"`
}

// GET /api/labels
func (h *LabelHandler) GetAll(c *gin.Context) {
	labels, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[label][list][err] %v", err)
		respondError(c, err)
		return
	}
	if labels == nil {
		labels = []models.Label{}
	}
	c.Header("X-Total-Count", strconv.Itoa(len(labels)))
	c.JSON(http.StatusOK, labels)
}

// GET /api/labels/:id
func (h *LabelHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	label, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[label][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

// POST /api/labels
func (h *LabelHandler) Create(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[label][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	label, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		log.Printf("[label][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[label][create][ok] id=%d name=%s", label.ID, label.Name)
	c.JSON(http.StatusCreated, label)
}

// PUT /api/labels/:id
func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[label][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	label, err := h.service.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		log.Printf("[label][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[label][update][ok] id=%d", id)
	c.JSON(http.StatusOK, label)
}

// DELETE /api/labels/:id
func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[label][delete][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[label][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
