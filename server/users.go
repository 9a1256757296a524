package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/model"
	"github.com/existflow/flowboard/internal/store"
)

type upsertUserRequest struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type setActiveProjectRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProjectID string `json:"projectId" validate:"required"`
}

// handleUpsertUser creates the user on first contact and updates only the
// supplied fields afterwards. Repeated identical calls converge on the same
// stored record after the first one.
func (s *Server) handleUpsertUser(c echo.Context) error {
	var req upsertUserRequest
	if !s.bindAndValidate(c, &req) {
		return nil
	}

	ctx := c.Request().Context()

	var existing model.User
	err := s.store.Get(ctx, model.UsersCollection, req.UID, &existing)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user := model.NewUser(req.UID, req.Email, req.DisplayName, req.PhotoURL)
		if err := s.store.Set(ctx, model.UsersCollection, req.UID, user); err != nil {
			return s.storeError(c, "failed to create user", err)
		}
		return s.respondWithUser(c, req.UID, http.StatusCreated)
	case err != nil:
		return s.storeError(c, "failed to load user", err)
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"updatedAt": now,
		"lastLogin": now,
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.DisplayName != "" {
		fields["displayName"] = req.DisplayName
	}
	if req.PhotoURL != "" {
		fields["photoURL"] = req.PhotoURL
	}

	if err := s.store.Update(ctx, model.UsersCollection, req.UID, fields); err != nil {
		return s.storeError(c, "failed to update user", err)
	}
	return s.respondWithUser(c, req.UID, http.StatusOK)
}

// respondWithUser returns the stored record as it exists after the write.
func (s *Server) respondWithUser(c echo.Context, uid string, status int) error {
	var user model.User
	if err := s.store.Get(c.Request().Context(), model.UsersCollection, uid, &user); err != nil {
		return s.storeError(c, "failed to read back user", err)
	}
	return c.JSON(status, user)
}

// handleGetUser fetches a user by uid.
func (s *Server) handleGetUser(c echo.Context) error {
	uid := c.Param("uid")

	var user model.User
	err := s.store.Get(c.Request().Context(), model.UsersCollection, uid, &user)
	if errors.Is(err, store.ErrNotFound) {
		return writeError(c, http.StatusNotFound, "User not found", codeNotFound)
	}
	if err != nil {
		return s.storeError(c, "failed to load user", err)
	}
	return c.JSON(http.StatusOK, user)
}

// handleSetActiveProject points the user at a project. The project reference
// is written unconditionally; it is not checked against the projects
// collection.
func (s *Server) handleSetActiveProject(c echo.Context) error {
	var req setActiveProjectRequest
	if !s.bindAndValidate(c, &req) {
		return nil
	}

	ctx := c.Request().Context()

	var user model.User
	err := s.store.Get(ctx, model.UsersCollection, req.UserID, &user)
	if errors.Is(err, store.ErrNotFound) {
		return writeError(c, http.StatusNotFound, "User not found", codeNotFound)
	}
	if err != nil {
		return s.storeError(c, "failed to load user", err)
	}

	fields := map[string]any{
		"activeProjectId": req.ProjectID,
		"updatedAt":       time.Now().UTC(),
	}
	if err := s.store.Update(ctx, model.UsersCollection, req.UserID, fields); err != nil {
		return s.storeError(c, "failed to set active project", err)
	}
	return s.respondWithUser(c, req.UserID, http.StatusOK)
}
