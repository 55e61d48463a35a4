package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clubreg/internal/auth"
	"clubreg/internal/metrics"
	"clubreg/internal/queue"
	"clubreg/internal/registry"
)

func (h *Handler) issueSession(c *gin.Context, m registry.Member, status int) {
	tokens, err := auth.Issue(m.ID, m.Role, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	if err := h.svc.Store().SaveRefreshToken(c.Request.Context(), m.ID, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		logrus.Errorf("refresh token save failed: %v", err)
	}

	c.JSON(status, gin.H{
		"user":          m,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

// Register creates an account and signs the member in, mirroring the
// original create-then-redirect flow.
func (h *Handler) Register(c *gin.Context) {
	var req registry.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	metrics.Registrations.Inc()
	h.issueSession(c, m, http.StatusCreated)
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	h.issueSession(c, m, http.StatusOK)
}

// Refresh rotates a refresh token into a fresh pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := h.svc.Store().RefreshTokenValid(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	m, err := h.svc.Store().GetMember(c.Request.Context(), memberID)
	if err != nil {
		writeErr(c, err)
		return
	}
	if err := h.svc.Store().RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		logrus.Errorf("refresh token revoke failed: %v", err)
	}
	h.issueSession(c, m, http.StatusOK)
}

// Logout revokes the presented refresh token.
func (h *Handler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Store().RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		logrus.Errorf("refresh token revoke failed: %v", err)
	}
	c.Status(http.StatusNoContent)
}

// ForgotPassword issues a reset token through the outbox. The response never
// reveals whether the email is registered.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"message": "Password reset email sent! Check your inbox."}

	// Stored emails are lowercased; look up the same shape so a differently
	// cased address still receives its reset mail.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	m, err := h.svc.Store().GetMemberByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(h.cfg.ResetTTL)
	if err := h.svc.Store().CreatePasswordReset(c.Request.Context(), token, m.ID, expiresAt); err != nil {
		logrus.Errorf("password reset create failed: %v", err)
		c.JSON(http.StatusOK, resp)
		return
	}

	msg, err := queue.NewMessage(queue.TypePasswordReset, gin.H{"member_id": m.ID, "token": token})
	if err == nil {
		err = h.q.Publish(c.Request.Context(), msg)
	}
	if err != nil {
		logrus.Errorf("password reset enqueue failed: %v", err)
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword redeems a reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. You can sign in now."})
}
