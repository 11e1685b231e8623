package handler

import (
	"net/http"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Resend(c *gin.Context) {
	var req dto.ResendRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Resend(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// VerifyEmail consumes the emailed verification link. The raw token travels
// in the URL; lookup is by hash so the stored value alone is useless.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.svc.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "verificado": true})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// Always 200: whether the email exists is not disclosed.
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
