package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avkurov/product-catalog/internal/hash"
	"github.com/avkurov/product-catalog/internal/logging"
	authmw "github.com/avkurov/product-catalog/internal/middleware/auth"
	"github.com/avkurov/product-catalog/internal/models"
	"github.com/avkurov/product-catalog/internal/mykafka"
	"github.com/avkurov/product-catalog/internal/tokens"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *mykafka.Producer
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() map[string]string {
	fields := map[string]string{}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if len(r.Password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Login keeps the historical looser minimum of 4 characters.
func (r *LoginRequest) Validate() map[string]string {
	fields := map[string]string{}
	if r.Email == "" {
		fields["email"] = "is required"
	}
	if len(r.Password) < 4 {
		fields["password"] = "must be at least 4 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fields := req.Validate(); fields != nil {
		l.Warn("register_error", "status", 400, "reason", "validation failed")
		return echo.NewHTTPError(http.StatusBadRequest, fields)
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		l.Warn("register_error", "status", 400, "reason", "email already registered")
		return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "status", 500, "reason", "cannot check email", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		Name:         req.Name,
	}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	token, err := tokens.Issue(user.ID, h.JWTSecret)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot issue token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fields := req.Validate(); fields != nil {
		l.Warn("login_error", "status", 400, "reason", "validation failed")
		return echo.NewHTTPError(http.StatusBadRequest, fields)
	}

	var user models.User
	if err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_failed", "status", 500, "reason", "cannot load user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "user_id", user.ID)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, err := tokens.Issue(user.ID, h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user := authmw.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": user,
	})
}
