// Package handler wires the HTTP surface of the recruitment portal.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubreg/internal/auth"
	"clubreg/internal/chatbot"
	"clubreg/internal/config"
	"clubreg/internal/metrics"
	"clubreg/internal/queue"
	"clubreg/internal/registry"
	"clubreg/internal/tracks"
)

const serviceName = "clubreg-portal"

// Handler carries the dependencies shared by all routes.
type Handler struct {
	cfg config.App
	svc *registry.Service
	bot *chatbot.Bot
	q   queue.Queue
}

// New creates a handler.
func New(cfg config.App, svc *registry.Service, bot *chatbot.Bot, q queue.Queue) *Handler {
	return &Handler{cfg: cfg, svc: svc, bot: bot, q: q}
}

// Routes registers every endpoint on the router.
func (h *Handler) Routes(r *gin.Engine) {
	// Public serverless-style endpoints kept under their historical paths.
	r.POST("/api/sdcChatbot", h.Chatbot)
	r.POST("/api/sendContactEmail", h.SendContactEmail)
	r.Any("/api/healthCheck", h.HealthCheck)

	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)
	r.POST("/v1/auth/logout", h.Logout)
	r.POST("/v1/auth/forgot", h.ForgotPassword)
	r.POST("/v1/auth/reset", h.ResetPassword)

	r.GET("/v1/tracks", h.ListTracks)

	member := r.Group("/v1", auth.SessionAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	member.GET("/profile", h.GetProfile)
	member.PUT("/profile", h.UpdateProfile)
	member.PUT("/track", h.SelectTrack)
	member.GET("/task", h.GetTask)
	member.POST("/task/complete", h.CompleteTask)
	member.POST("/submission", h.Submit)
	member.GET("/timeline", h.GetTimeline)

	admin := member.Group("/admin", auth.RequireRole(registry.RoleAdmin))
	admin.GET("/users", h.AdminListUsers)
	admin.GET("/submissions", h.AdminListSubmissions)
	admin.GET("/submissions/:id", h.AdminGetSubmission)
	admin.PUT("/submissions/:id/review", h.AdminSetReviewed)
	admin.PUT("/submissions/:id/grade", h.AdminSetGraded)
	admin.GET("/inquiries", h.AdminListInquiries)
}

// writeErr maps service errors onto HTTP responses.
func writeErr(c *gin.Context, err error) {
	var ve registry.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, registry.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, registry.ErrEmailTaken),
		errors.Is(err, registry.ErrTrackLocked),
		errors.Is(err, registry.ErrAlreadySubmitted),
		errors.Is(err, registry.ErrNotReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed, please try again"})
	}
}

// HealthCheck always succeeds, for any method, matching the historical
// serverless contract.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// Chatbot answers a single message.
func (h *Handler) Chatbot(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.bot.Respond(c.Request.Context(), req.Message)
	if err != nil {
		metrics.ChatbotRequests.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "I apologize, but I'm having trouble processing your request right now. " +
				"Please try again later or use the Contact Us form for assistance.",
		})
		return
	}
	metrics.ChatbotRequests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// SendContactEmail stores the inquiry, then hands delivery to the outbox.
// The record is the source of truth; email is delivered asynchronously so a
// relay outage can never show the user success without persisted data.
func (h *Handler) SendContactEmail(c *gin.Context) {
	var req registry.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	inquiry, err := h.svc.NewInquiry(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}

	msg, err := queue.NewMessage(queue.TypeContactEmail, gin.H{"inquiry_id": inquiry.ID})
	if err == nil {
		err = h.q.Publish(c.Request.Context(), msg)
	}
	if err != nil {
		// Inquiry is stored; delivery will be missing but the team still
		// sees it in the admin console.
		logrus.Errorf("contact email enqueue failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message! We have received your inquiry and will get back to you soon.",
	})
}

// ListTracks returns the public task catalog.
func (h *Handler) ListTracks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tracks": tracks.All()})
}
