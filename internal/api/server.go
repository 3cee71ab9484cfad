// Package api serves the board over a loopback JSON API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/logger"
)

// Server is the local HTTP API
type Server struct {
	store *db.Store
	board *board.Service
	echo  *echo.Echo
	now   func() time.Time
}

// New creates a server over store. The store is not closed by the server.
func New(store *db.Store) *Server {
	s := &Server{
		store: store,
		board: board.New(store),
		now:   time.Now,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects/:id", s.handleGetProject)
	api.PUT("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)
	api.GET("/projects/:id/tasks", s.handleListTasks)
	api.DELETE("/projects/:id/tasks", s.handleClearProjectTasks)
	api.GET("/projects/:id/export", s.handleExport)
	api.POST("/projects/:id/import", s.handleImport)

	api.POST("/tasks", s.handleCreateTask)
	api.POST("/tasks/bulk", s.handleBulkTasks)
	api.DELETE("/tasks", s.handleClearAllTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/move", s.handleMoveTask)
	api.POST("/tasks/:id/archive", s.handleArchiveTask)
	api.POST("/tasks/:id/unarchive", s.handleUnarchiveTask)
	api.POST("/tasks/:id/comments", s.handleAddComment)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start listens on addr and blocks until the server stops.
// It returns nil after a graceful Shutdown.
func (s *Server) Start(addr string) error {
	logger.Info("API listening", logger.F("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.Open(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
