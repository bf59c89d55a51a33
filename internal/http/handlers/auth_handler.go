// Auth HTTP handlers.
//
// This file exposes the account endpoints:
//   - POST /auth/register  (create account)
//   - POST /auth/login     (password login, returns a bearer token)
//   - GET  /me             (current account profile with points and level)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/middleware"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ana Souza"`
	Email    string `json:"email" binding:"required" example:"ana@empresa.com.br"`
	Password string `json:"password" binding:"required,min=6" example:"s3nh4-f0rte"`
}

// LoginRequest is the JSON payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@empresa.com.br"`
	Password string `json:"password" binding:"required" example:"s3nh4-f0rte"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int    `json:"points"`
	Admin  bool   `json:"admin"`
	TeamID string `json:"team_id,omitempty"`
	Level  string `json:"level,omitempty"`
}

// LoginResponse carries the bearer token plus the account profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetUserAdminRequest toggles the admin flag on an account.
type SetUserAdminRequest struct {
	Admin *bool `json:"admin" binding:"required"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a new user with name, email, and password.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body body handlers.RegisterRequest true "Registration payload"
//
// @Success     201  {object}  handlers.UserResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, email and password (min 6 chars) are required")
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusConflict, ErrCodeEmailTaken, "email already registered")
		return
	case err != nil:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	ok(c, http.StatusCreated, h.userResponse(c, u.ID))
}

// Login godoc
// @ID          login
// @Summary     Password login
// @Description Verifies credentials and returns a bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body body handlers.LoginRequest true "Login payload"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}
	token, u, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, User: h.userResponse(c, u.ID)})
}

// Me godoc
// @ID          me
// @Summary     Current account
// @Description Returns the authenticated user's profile including points and level.
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.UserResponse
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	uid, sessionOK := middleware.UserID(c)
	if !sessionOK {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing token")
		return
	}
	ok(c, http.StatusOK, h.userResponse(c, uid))
}

// SetUserAdmin godoc
// @ID          setUserAdmin
// @Summary     Toggle the admin flag on an account
// @Description Grants or revokes admin access for the given user.
// @Tags        Admin
// @Accept      json
// @Security    BearerAuth
//
// @Param       id   path string                         true "User id"
// @Param       body body handlers.SetUserAdminRequest true "Admin flag"
//
// @Success     204  "Updated"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "User not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /admin/users/{id}/admin [put]
func (h *Handlers) SetUserAdmin(c *gin.Context) {
	var req SetUserAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Admin == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "admin (boolean) is required")
		return
	}
	err := repo.SetAdmin(c.Request.Context(), h.DB, c.Param("id"), *req.Admin)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// userResponse loads the public projection of an account, resolving the
// gamification level. Lookup failures degrade to a partial profile.
func (h *Handlers) userResponse(c *gin.Context, userID string) UserResponse {
	ctx := c.Request.Context()
	u, err := repo.GetUser(ctx, h.DB, userID)
	if err != nil {
		return UserResponse{ID: userID}
	}
	resp := UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Points: u.Points,
		Admin:  u.IsAdmin,
	}
	if u.TeamID != nil {
		resp.TeamID = *u.TeamID
	}
	if lvl, err := h.Game.LevelFor(ctx, u.ID); err == nil && lvl != nil {
		resp.Level = lvl.Name
	}
	return resp
}
