package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/model"
)

type moveRequest struct {
	Status string `json:"status"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// fillDefaults completes a task record posted by a client
func fillDefaults(t *model.Task) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.ProjectID == "" {
		t.ProjectID = model.DefaultProjectID
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Comments == nil {
		t.Comments = []model.Comment{}
	}
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var t model.Task
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	fillDefaults(&t)
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", board.ErrInvalidStatus, t.Status)
	}

	t, err := s.store.AddTask(c.Request().Context(), t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleBulkTasks(c echo.Context) error {
	var tasks []model.Task
	if err := c.Bind(&tasks); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	for i := range tasks {
		fillDefaults(&tasks[i])
		if !tasks[i].Status.Valid() {
			return fmt.Errorf("%w: %q", board.ErrInvalidStatus, tasks[i].Status)
		}
	}

	if err := s.store.BulkAddTasks(c.Request().Context(), tasks); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"count": len(tasks)})
}

func (s *Server) handleClearAllTasks(c echo.Context) error {
	if err := s.board.ClearTasks(c.Request().Context(), db.AllProjects); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetTask(c echo.Context) error {
	t, err := s.board.FindTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var t model.Task
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	t.ID = c.Param("id")
	fillDefaults(&t)
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", board.ErrInvalidStatus, t.Status)
	}

	t, err := s.store.UpdateTask(c.Request().Context(), t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := s.store.DeleteTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleMoveTask(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	status, err := board.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	t, _, err := s.board.MoveTask(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleArchiveTask(c echo.Context) error {
	t, err := s.board.ArchiveTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleUnarchiveTask(c echo.Context) error {
	t, err := s.board.UnarchiveTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleAddComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	t, err := s.board.AddComment(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
