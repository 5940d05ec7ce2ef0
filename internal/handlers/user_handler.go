package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/models"
	"taskman/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

func (r userRequest) toInput() models.UserInput {
	return models.UserInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.User
// @Failure      422  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		log.Printf("[user][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[user][create][ok] id=%d email=%s", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// GET /api/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[user][list][err] %v", err)
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.Header("X-Total-Count", strconv.Itoa(len(users)))
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[user][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/users/:id — only admins or the user themselves may update.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	callerID, isAdmin := getCaller(c)
	if !isAdmin && callerID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		log.Printf("[user][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[user][update][ok] id=%d", id)
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id — only admins or the user themselves may delete.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	callerID, isAdmin := getCaller(c)
	if !isAdmin && callerID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[user][delete][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[user][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
