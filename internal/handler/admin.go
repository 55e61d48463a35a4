package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubreg/internal/registry"
)

// AdminListUsers returns every registrant plus per-track totals for the
// console dashboard.
func (h *Handler) AdminListUsers(c *gin.Context) {
	members, err := h.svc.Store().ListMembers(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	counts, err := h.svc.Store().CountByTrack(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":       members,
		"total":       len(members),
		"trackCounts": counts,
	})
}

// AdminListSubmissions returns only members with a recorded submission.
func (h *Handler) AdminListSubmissions(c *gin.Context) {
	members, err := h.svc.Store().ListSubmissions(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}

	type row struct {
		registry.Member
		Status string `json:"status"`
	}
	rows := make([]row, len(members))
	for i, m := range members {
		rows[i] = row{Member: m, Status: m.Status()}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": rows, "total": len(rows)})
}

// AdminGetSubmission returns one member's submission detail.
func (h *Handler) AdminGetSubmission(c *gin.Context) {
	m, err := h.svc.Store().GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m, "status": m.Status()})
}

// AdminSetReviewed toggles the review flag. Turning review off also clears
// graded, in the same store operation.
func (h *Handler) AdminSetReviewed(c *gin.Context) {
	var req struct {
		Reviewed *bool `json:"reviewed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reviewed flag is required"})
		return
	}
	m, err := h.svc.SetReviewed(c.Request.Context(), c.Param("id"), *req.Reviewed)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m, "status": m.Status()})
}

// AdminSetGraded toggles the grade flag. Grading requires a reviewed
// submission; the store refuses otherwise.
func (h *Handler) AdminSetGraded(c *gin.Context) {
	var req struct {
		Graded *bool `json:"graded" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graded flag is required"})
		return
	}
	m, err := h.svc.SetGraded(c.Request.Context(), c.Param("id"), *req.Graded)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": m, "status": m.Status()})
}

// AdminListInquiries returns stored contact-form inquiries with their
// delivery status.
func (h *Handler) AdminListInquiries(c *gin.Context) {
	inquiries, err := h.svc.Store().ListInquiries(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "total": len(inquiries)})
}
