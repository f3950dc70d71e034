package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskboard/internal/apperrors"
	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// BoardHandler handles board and task endpoints.
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoardRequest represents a board creation request.
type CreateBoardRequest struct {
	Name string `form:"name" json:"name" validate:"required"`
}

// AddTaskRequest represents a task creation request.
type AddTaskRequest struct {
	Name string `form:"task_name" json:"task_name" validate:"required"`
}

// UpdateTaskRequest represents a task status update request.
type UpdateTaskRequest struct {
	Status string `form:"status" json:"status" validate:"required"`
}

// BoardResponse represents a board with its tasks.
type BoardResponse struct {
	Board *model.Board `json:"board"`
	Tasks []model.Task `json:"tasks"`
}

// currentUserID returns the user ID resolved by the identity middleware.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get(auth.ContextUserIDKey).(uint)
	return id
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// redirectBack returns the caller to the page the request came from.
func redirectBack(c echo.Context) error {
	target := c.Request().Referer()
	if target == "" {
		target = "/dashboard"
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func invalidIDError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: "invalid id",
		Code:  "INVALID_ID",
	})
}

func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// Dashboard godoc
// @Summary List the caller's boards
// @Tags boards
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /dashboard [get]
func (h *BoardHandler) Dashboard(c echo.Context) error {
	boards, err := h.boardService.ListBoards(c.Request().Context(), currentUserID(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"boards": boards,
	})
}

// CreateBoard godoc
// @Summary Create a board owned by the caller
// @Tags boards
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param name formData string true "Board name"
// @Success 303 "redirects to /dashboard"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /create_board [post]
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	var req CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.boardService.CreateBoard(c.Request().Context(), currentUserID(c), req.Name); err != nil {
		return domainError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ViewBoard godoc
// @Summary Show a board the caller owns, with its tasks
// @Tags boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} BoardResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /board/{id} [get]
func (h *BoardHandler) ViewBoard(c echo.Context) error {
	boardID, err := pathID(c, "id")
	if err != nil {
		return invalidIDError()
	}

	userID := currentUserID(c)
	board, err := h.boardService.GetBoard(c.Request().Context(), userID, boardID)
	if err != nil {
		return domainError(err)
	}

	tasks, err := h.boardService.ListTasks(c.Request().Context(), userID, boardID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, BoardResponse{
		Board: board,
		Tasks: tasks,
	})
}

// AddTask godoc
// @Summary Add a task to a board the caller owns
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param task_name formData string true "Task name"
// @Success 303 "redirects to /board/{id}"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /add_task/{id} [post]
func (h *BoardHandler) AddTask(c echo.Context) error {
	boardID, err := pathID(c, "id")
	if err != nil {
		return invalidIDError()
	}

	var req AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.boardService.CreateTask(c.Request().Context(), currentUserID(c), boardID, req.Name); err != nil {
		return domainError(err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/board/%d", boardID))
}

// DeleteTask godoc
// @Summary Delete a task from a board the caller owns
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 303 "redirects back to the referring page"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /delete_task/{id} [get]
func (h *BoardHandler) DeleteTask(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return invalidIDError()
	}

	if err := h.boardService.DeleteTask(c.Request().Context(), currentUserID(c), taskID); err != nil {
		return domainError(err)
	}

	return redirectBack(c)
}

// UpdateTask godoc
// @Summary Set the status of a task on a board the caller owns
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param status formData string true "New status"
// @Success 303 "redirects back to the referring page"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /update_task/{id} [post]
func (h *BoardHandler) UpdateTask(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return invalidIDError()
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.boardService.UpdateTaskStatus(c.Request().Context(), currentUserID(c), taskID, req.Status); err != nil {
		return domainError(err)
	}

	return redirectBack(c)
}
