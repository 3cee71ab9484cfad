package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/transfer"
)

type projectRequest struct {
	Name string `json:"name"`
}

type projectResponse struct {
	model.Project
	Active   int `json:"active"`
	Done     int `json:"done"`
	Archived int `json:"archived"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	ctx := c.Request().Context()
	projects, err := s.board.Projects(ctx)
	if err != nil {
		return err
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		counts, err := s.board.Counts(ctx, p.ID)
		if err != nil {
			return err
		}
		resp = append(resp, projectResponse{p, counts.Active, counts.Done, counts.Archived})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetProject(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := s.project(c)
	if err != nil {
		return err
	}
	counts, err := s.board.Counts(ctx, p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectResponse{p, counts.Active, counts.Done, counts.Archived})
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	p, err := s.board.AddProject(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	p, err := s.project(c)
	if err != nil {
		return err
	}
	p, err = s.board.RenameProject(c.Request().Context(), p.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	p, err := s.project(c)
	if err != nil {
		return err
	}
	if _, err := s.board.DeleteProject(c.Request().Context(), p.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": p.ID})
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.store.GetTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleClearProjectTasks(c echo.Context) error {
	if err := s.board.ClearTasks(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleExport(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := s.project(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := transfer.Export(ctx, s.store, p.ID, &buf); err != nil {
		return err
	}

	name := transfer.ExportFileName(p.Name, s.now())
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", strings.ReplaceAll(name, `"`, "")))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
}

func (s *Server) handleImport(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := s.project(c)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}
	tasks, err := transfer.Import(ctx, s.store, p.ID, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"imported": len(tasks)})
}

// project loads the project named by the :id path parameter
func (s *Server) project(c echo.Context) (model.Project, error) {
	id := c.Param("id")
	p, ok, err := s.store.GetProject(c.Request().Context(), id)
	if err != nil {
		return model.Project{}, err
	}
	if !ok {
		return model.Project{}, fmt.Errorf("%w: project %q", board.ErrNotFound, id)
	}
	return p, nil
}
