package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"user-service/internal/auth"
	"user-service/internal/entity"
	"user-service/internal/repository"
	"user-service/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	authService *auth.Service
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService, authService *auth.Service) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Password  string `json:"password"`
}

// CreateUser creates a new user --> POST /api/user
func (h *UserHandler) CreateUser(c echo.Context) error {
	req := createUserRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	user := entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
	}

	createdUser, err := h.userService.CreateUser(c.Request().Context(), &user, req.Password)
	if errors.Is(err, service.ErrMissingPassword) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "password is required"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, createdUser)
}

// GetUserByID retrieves a user by ID --> GET /api/user/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	user, err := h.userService.GetUserByID(c.Request().Context(), idInt)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, user)
}

// GetAllUsers retrieves all users --> GET /api/users
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userService.GetAllUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, users)
}

// UpdateUser updates an existing user --> PATCH /api/user
func (h *UserHandler) UpdateUser(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	updatedUser, err := h.userService.UpdateUser(c.Request().Context(), &user)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, updatedUser)
}

// DeleteUser deletes a user by ID --> DELETE /api/user/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	err = h.userService.DeleteUser(c.Request().Context(), idInt)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

// Login verifies credentials and returns a bearer token --> POST /api/login.
// Clients see only the failure category: bad request for a missing password,
// unauthorized with a generic message for bad credentials, server error when
// the store is down.
func (h *UserHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := c.Bind(&login); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.authService.Login(c.Request().Context(), login.Email, login.Password)
	switch {
	case errors.Is(err, auth.ErrMissingPassword):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "password is required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Check returns the authenticated user's id --> GET /api/protected/check.
// An absent identity means the token gate did not run; that is unauthorized,
// never an anonymous default.
func (h *UserHandler) Check(c echo.Context) error {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing token"})
	}

	return c.JSON(http.StatusOK, map[string]int{"id": id})
}
