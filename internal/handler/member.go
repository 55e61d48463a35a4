package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubreg/internal/auth"
	"clubreg/internal/metrics"
	"clubreg/internal/queue"
	"clubreg/internal/registry"
	"clubreg/internal/tracks"
)

func (h *Handler) memberID(c *gin.Context) (string, bool) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return "", false
	}
	return claims.Subject, true
}

// GetProfile returns the caller's record plus the derived status.
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	m, err := h.svc.Store().GetMember(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m, "status": m.Status()})
}

// UpdateProfile applies owner edits to the profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req struct {
		FullName      string `json:"fullName"`
		Email         string `json:"email"`
		StudentID     string `json:"studentId"`
		Department    string `json:"department"`
		YearOfStudy   int    `json:"yearOfStudy,string"`
		ContactNumber string `json:"contactNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	m, err := h.svc.UpdateProfile(c.Request.Context(), id, registry.ProfileUpdate{
		FullName:      req.FullName,
		Email:         req.Email,
		StudentID:     req.StudentID,
		Department:    req.Department,
		YearOfStudy:   req.YearOfStudy,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m, "message": "Profile updated successfully!"})
}

// SelectTrack picks or changes the development track while unlocked.
func (h *Handler) SelectTrack(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req struct {
		Track string `json:"track" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid development track"})
		return
	}
	m, err := h.svc.SelectTrack(c.Request.Context(), id, req.Track)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m})
}

// GetTask returns the task assigned to the caller's track. Members without a
// track get the empty state so the client can prompt for selection.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	m, err := h.svc.Store().GetMember(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	if m.DevelopmentTrack == nil {
		c.JSON(http.StatusOK, gin.H{"task": nil, "taskCompleted": false})
		return
	}
	task, found := tracks.Lookup(*m.DevelopmentTrack)
	if !found {
		c.JSON(http.StatusOK, gin.H{"task": nil, "taskCompleted": m.TaskCompleted})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "taskCompleted": m.TaskCompleted})
}

// CompleteTask marks the caller's assigned task done.
func (h *Handler) CompleteTask(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	m, err := h.svc.CompleteTask(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m})
}

// Submit records the one-time project submission and queues the receipt mail.
func (h *Handler) Submit(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req registry.SubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	m, err := h.svc.Submit(c.Request.Context(), id, req)
	if err != nil {
		writeErr(c, err)
		return
	}
	metrics.Submissions.Inc()

	msg, err := queue.NewMessage(queue.TypeSubmissionReceipt, gin.H{"member_id": m.ID})
	if err == nil {
		err = h.q.Publish(c.Request.Context(), msg)
	}
	if err != nil {
		logrus.Errorf("submission receipt enqueue failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    m,
		"message": "Project submitted successfully!",
	})
}

// GetTimeline returns the derived progress steps for the caller.
func (h *Handler) GetTimeline(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	m, err := h.svc.Store().GetMember(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": registry.Timeline(m), "status": m.Status()})
}
