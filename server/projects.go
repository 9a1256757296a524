package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/logger"
	"github.com/existflow/flowboard/internal/model"
	"github.com/existflow/flowboard/internal/store"
)

type createProjectRequest struct {
	UserID      string        `json:"userId" validate:"required"`
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Status      string        `json:"status" validate:"omitempty,oneof=planning in-progress completed archived"`
	Kanban      *model.Kanban `json:"kanban"`
}

// handleCreateProject persists a new project and returns the stored record.
// The owning user is not checked against the users collection.
func (s *Server) handleCreateProject(c echo.Context) error {
	var req createProjectRequest
	if !s.bindAndValidate(c, &req) {
		return nil
	}

	ctx := c.Request().Context()
	project := model.NewProject(req.UserID, req.Title, req.Description, req.Status, req.Kanban)

	if err := s.store.Set(ctx, model.ProjectsCollection, project.ID, project); err != nil {
		return s.storeError(c, "failed to create project", err)
	}

	// Read back after the write; a miss here means the write was lost.
	var stored model.Project
	err := s.store.Get(ctx, model.ProjectsCollection, project.ID, &stored)
	if errors.Is(err, store.ErrNotFound) {
		logger.Error("project missing after create", logger.F("projectId", project.ID))
		return writeError(c, http.StatusInternalServerError, "Failed to create project", codeInternal)
	}
	if err != nil {
		return s.storeError(c, "failed to read back project", err)
	}
	return c.JSON(http.StatusCreated, stored)
}

// handleListProjects returns a user's projects, most recently updated first.
func (s *Server) handleListProjects(c echo.Context) error {
	uid := c.Param("uid")

	var projects []model.Project
	err := s.store.Query(c.Request().Context(), model.ProjectsCollection, "userId", uid, "updatedAt", &projects)
	if err != nil {
		return s.storeError(c, "failed to list projects", err)
	}

	if len(projects) == 0 {
		// An empty result is reported as missing; the frontend contract
		// treats a user with no projects as not found.
		return writeError(c, http.StatusNotFound, "No projects found for user", codeNotFound)
	}
	return c.JSON(http.StatusOK, projects)
}
