// Package server exposes the coaching tools over HTTP for the chat
// host. Handlers parse and bound parameters, delegate to the service
// layer, and wrap results in the response envelope.
package server

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"runcoach/internal/service"
)

// Handler holds the dependencies of the tool endpoints.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New builds the router with all tool routes and middleware attached.
func New(svc *service.Service, logger *slog.Logger) *gin.Engine {
	h := &Handler{svc: svc, logger: logger}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		respondOK(c, gin.H{"status": "ok"})
	})

	tools := r.Group("/tools")
	{
		tools.GET("/recent-runs", h.recentRuns)
		tools.GET("/training-load", h.trainingLoad)
		tools.GET("/compare-weeks", h.compareWeeks)
		tools.GET("/compare-runs", h.compareRuns)
		tools.GET("/elevation", h.elevation)
		tools.GET("/pace-trends", h.paceTrends)
		tools.POST("/routes/generate", h.generateRoute)
		tools.POST("/routes/export", h.exportRoute)
	}

	return r
}

// daysParam parses the window size, applying the default and cap.
func daysParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("days", strconv.Itoa(service.DefaultRecentDays))
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		badRequest(c, "days must be a positive integer")
		return 0, false
	}
	if days > service.MaxWindowDays {
		days = service.MaxWindowDays
	}
	return days, true
}

func (h *Handler) recentRuns(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	result, err := h.svc.RecentRuns(c.Request.Context(), days)
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) trainingLoad(c *gin.Context) {
	result, err := h.svc.TrainingLoad(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) compareWeeks(c *gin.Context) {
	result, err := h.svc.CompareWeeks(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) compareRuns(c *gin.Context) {
	baselineID, err1 := strconv.ParseInt(c.Query("baseline_id"), 10, 64)
	currentID, err2 := strconv.ParseInt(c.Query("current_id"), 10, 64)
	if err1 != nil || err2 != nil {
		badRequest(c, "baseline_id and current_id must be activity IDs")
		return
	}

	result, err := h.svc.CompareRuns(c.Request.Context(), baselineID, currentID)
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) elevation(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	result, err := h.svc.Elevation(c.Request.Context(), days)
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) paceTrends(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	groupBy := c.Query("group_by")
	if groupBy != "" && groupBy != "distance" && groupBy != "weekday" {
		badRequest(c, `group_by must be "distance" or "weekday"`)
		return
	}

	result, err := h.svc.PaceTrends(c.Request.Context(), days, groupBy)
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}

type generateRouteRequest struct {
	StartLat   float64 `json:"start_lat" binding:"min=-90,max=90"`
	StartLng   float64 `json:"start_lng" binding:"min=-180,max=180"`
	DistanceKm float64 `json:"distance_km" binding:"required,gt=0,lte=100"`
	Seed       int64   `json:"seed"`
}

func (h *Handler) generateRoute(c *gin.Context) {
	var req generateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid route request: "+err.Error())
		return
	}
	respondOK(c, h.svc.GenerateRoute(req.StartLat, req.StartLng, req.DistanceKm, req.Seed))
}

func (h *Handler) exportRoute(c *gin.Context) {
	var req service.ExportRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid export request: "+err.Error())
		return
	}

	result, err := h.svc.ExportRoute(c.Request.Context(), req)
	if err != nil {
		upstreamError(c, err)
		return
	}
	respondOK(c, result)
}
