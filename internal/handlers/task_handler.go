package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/models"
	"taskman/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	tg      *services.TelegramService
}

func NewTaskHandler(service services.TaskService, tg *services.TelegramService) *TaskHandler {
	return &TaskHandler{service: service, tg: tg}
}

// taskRequest accepts both the current field names and the legacy aliases
// (name/description/assignee_id/taskLabelIds) used by older clients.
type taskRequest struct {
	Title       *string  `json:"title"`
	Name        *string  `json:"name"`
	Content     *string  `json:"content"`
	Description *string  `json:"description"`
	StatusID    *int64   `json:"statusId"`
	Status      *string  `json:"status"`
	AssigneeID  *int64   `json:"assigneeId"`
	AssigneeAlt *int64   `json:"assignee_id"`
	LabelIDs    *[]int64 `json:"labelIds"`
	LabelsAlt   *[]int64 `json:"taskLabelIds"`
}

func (r taskRequest) toInput() models.TaskInput {
	in := models.TaskInput{
		Title:      r.Title,
		Content:    r.Content,
		StatusID:   r.StatusID,
		StatusSlug: r.Status,
		AssigneeID: r.AssigneeID,
		LabelIDs:   r.LabelIDs,
	}
	if in.Title == nil {
		in.Title = r.Name
	}
	if in.Content == nil {
		in.Content = r.Description
	}
	if in.AssigneeID == nil {
		in.AssigneeID = r.AssigneeAlt
	}
	if in.LabelIDs == nil {
		in.LabelIDs = r.LabelsAlt
	}
	return in
}

// parseTaskFilter reads the optional query parameters into a TaskFilter;
// absent parameters stay nil and restrict nothing.
func parseTaskFilter(c *gin.Context) models.TaskFilter {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("titleCont"); ok {
		filter.TitleCont = &v
	}
	if v, ok := c.GetQuery("assigneeId"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssigneeID = &id
		} else {
			log.Printf("[task][list][warn] bad assigneeId=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		filter.StatusSlug = &v
	}
	if v, ok := c.GetQuery("labelId"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.LabelID = &id
		} else {
			log.Printf("[task][list][warn] bad labelId=%q: %v", v, err)
		}
	}
	return filter
}

// @Summary      List tasks
// @Description  Returns tasks matching the optional filter parameters
// @Tags         Tasks
// @Produce      json
// @Param        titleCont   query  string  false  "title substring (case-insensitive)"
// @Param        assigneeId  query  int     false  "assignee id"
// @Param        status      query  string  false  "status slug"
// @Param        labelId     query  int     false  "label id"
// @Success      200  {array}  models.Task
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	filter := parseTaskFilter(c)

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.Header("X-Total-Count", strconv.Itoa(len(tasks)))
	c.JSON(http.StatusOK, tasks)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d title=%q status=%q", task.ID, task.Title, task.StatusSlug)
	c.JSON(http.StatusCreated, task)

	h.tg.NotifyTask("📌 New task", task)
}

// PUT /api/tasks/:id — sparse update: absent fields keep their values.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, task)

	h.tg.NotifyTask("✏️ Task updated", task)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)

	h.tg.NotifyTask("🗑️ Task deleted", task)

	c.Status(http.StatusNoContent)
}
