package handlers

import (
	"net/http"
	"strconv"

	"github.com/birat04/Notionize/internal/auth"
	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/dto"
	"github.com/birat04/Notionize/internal/service"

	"github.com/gin-gonic/gin"
)

const todoNotFound = "Todo not found"

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Title, req.Description)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusCreated, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// List godoc
// @Summary      List the caller's todos, newest first
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "1-based page number"
// @Param        page_size  query     int  false  "Todos per page (1-100, default 5)"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserIDFromContext(c)

	page, size, paged, err := pageParams(c)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	if !paged {
		list, err := h.svc.List(ctx, userID)
		if err != nil {
			writeError(c, err, todoNotFound)
			return
		}
		c.JSON(http.StatusOK, dto.ListTodosResponse{Todos: todosToResponses(list), Total: len(list)})
		return
	}
	list, total, err := h.svc.ListPage(ctx, userID, page, size)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Todos: todosToResponses(list), Total: total})
}

// pageParams reads the optional page and page_size query parameters. paged
// is false when neither is present; a missing one takes its default.
func pageParams(c *gin.Context) (page, size int, paged bool, err error) {
	rawPage, hasPage := c.GetQuery("page")
	rawSize, hasSize := c.GetQuery("page_size")
	if !hasPage && !hasSize {
		return 0, 0, false, nil
	}
	page, size = 1, service.DefaultPageSize
	if hasPage {
		if page, err = strconv.Atoi(rawPage); err != nil {
			return 0, 0, true, notInteger("page")
		}
	}
	if hasSize {
		if size, err = strconv.Atoi(rawSize); err != nil {
			return 0, 0, true, notInteger("page_size")
		}
	}
	return page, size, true, nil
}

func notInteger(field string) error {
	return &service.ValidationError{Fields: []service.FieldError{{Field: field, Message: "must be an integer"}}}
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", todoNotFound)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// Update godoc
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Partial update"
// @Success      200   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", todoNotFound)
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	patch := dom.TodoPatch{Title: req.Title, Description: req.Description, Completed: req.Completed}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", todoNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Todo deleted successfully"})
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
