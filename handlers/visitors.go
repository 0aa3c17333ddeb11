package handlers

import (
	"net/http"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"
	"github.com/Adnanwebguy1996/nex-goods-emporium/utils"

	"github.com/gin-gonic/gin"
)

// TrackVisitor handles POST /api/v1/visitors/track: the first page view of a
// session and every subsequent navigation. The session id comes from the
// client (persisted in its local storage); location is approximated from the
// reported timezone, device and browser from the User-Agent.
func TrackVisitor(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		Page      string `json:"page" binding:"required"`
		Timezone  string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and page are required"})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	location, countryCode := utils.LocationForTimezone(req.Timezone)

	err := Presence.RecordVisit(c.Request.Context(), models.Visitor{
		SessionID:   req.SessionID,
		Page:        req.Page,
		Location:    location,
		CountryCode: countryCode,
		Browser:     utils.BrowserName(userAgent),
		Device:      utils.DeviceType(userAgent),
		IPAddress:   c.ClientIP(),
		UserAgent:   userAgent,
	})
	if err != nil {
		// Tracking must never break the page view it observes
		c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "tracked": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "tracked": true})
}

// VisitorHeartbeat handles POST /api/v1/visitors/heartbeat, called on a fixed
// interval while a page stays open.
func VisitorHeartbeat(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		Page      string `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and page are required"})
		return
	}

	if err := Presence.Heartbeat(c.Request.Context(), req.SessionID, req.Page); err != nil {
		c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "tracked": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "tracked": true})
}

// GetActiveVisitors handles GET /api/v1/admin/visitors
func GetActiveVisitors(c *gin.Context) {
	visitors := Presence.ListActive()
	c.JSON(http.StatusOK, gin.H{
		"visitors": visitors,
		"total":    len(visitors),
	})
}

// GetVisitorStats handles GET /api/v1/admin/visitors/stats
func GetVisitorStats(c *gin.Context) {
	c.JSON(http.StatusOK, Presence.Stats())
}
