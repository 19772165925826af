package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/response"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// todoResponse is the outward shape of a todo item.
type todoResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTodoResponse(todo *entity.Todo) todoResponse {
	return todoResponse{
		ID:          todo.ID,
		Name:        todo.Name,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// TodoHandler holds dependencies for the todo handlers.
type TodoHandler struct {
	todoUC usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(todoUC usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todoUC: todoUC,
		logger: logger,
	}
}

// requireOwner extracts the authenticated user id set by the auth gate.
func requireOwner(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return userID, nil
}

// todoIDParam parses the :id path parameter. A malformed id is reported the
// same way as a missing todo so ids cannot be probed by shape.
func todoIDParam(c echo.Context) (uuid.UUID, error) {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrTodoNotFound, "malformed todo id")
	}

	return todoID, nil
}

// Create handles the todo creation request.
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := requireOwner(c)
	if err != nil {
		return err
	}

	var input usecase.CreateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid todo input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.todoUC.Create(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"todo": newTodoResponse(todo),
	})
}

// List returns every todo owned by the requester.
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := requireOwner(c)
	if err != nil {
		return err
	}

	todos, err := h.todoUC.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]todoResponse, 0, len(todos))
	for _, todo := range todos {
		items = append(items, newTodoResponse(todo))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"todos":   items,
		"results": len(items),
	})
}

// Get returns a single owned todo.
func (h *TodoHandler) Get(c echo.Context) error {
	userID, err := requireOwner(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	todo, err := h.todoUC.Get(c.Request().Context(), userID, todoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"todo": newTodoResponse(todo),
	})
}

// Update applies a partial update to an owned todo.
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := requireOwner(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid todo input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.todoUC.Update(c.Request().Context(), userID, todoID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"todo": newTodoResponse(todo),
	})
}

// Delete removes an owned todo.
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := requireOwner(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	if err := h.todoUC.Delete(c.Request().Context(), userID, todoID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
