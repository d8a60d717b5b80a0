package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/response"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func tokenMeta(res *application.AuthResult) map[string]any {
	return map[string]any{"expires_at": res.ExpiresAt}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tokenResponse{Token: res.Token}, "account created", tokenMeta(res))
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse{Token: res.Token}, "login successful", tokenMeta(res))
}

// Me returns the public view of the authenticated account.
func (h *AccountHandler) Me(c *gin.Context) {
	p, err := h.Svc.Current(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "ok", nil)
}

func (h *AccountHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "ok", map[string]any{"count": len(hits)})
}

// fail maps service errors to HTTP; anything unexpected is logged and hidden behind a 500.
func (h *AccountHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrAlreadyExists):
		response.Error[any](c, http.StatusBadRequest, "account already exists", nil)
	case errors.Is(err, application.ErrInvalidPassword):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", []validation.FieldError{
			{Field: "password", Message: err.Error()},
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, "invalid credentials", nil)
	case errors.Is(err, application.ErrAccountNotFound):
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
	default:
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Internal(c)
	}
}
