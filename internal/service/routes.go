package service

import (
	"context"
	"errors"
	"fmt"

	"runcoach/internal/route"
	"runcoach/internal/strava"
)

// RouteResult is a generated loop ready for the chat host to render:
// the encoded polyline travels to the map widget verbatim.
type RouteResult struct {
	Polyline   string        `json:"polyline"`
	Points     []route.Point `json:"points"`
	DistanceKm float64       `json:"distance_km"`
}

// GenerateRoute produces a candidate loop from a start point. Pure
// computation; the same seed reproduces the same loop.
func (s *Service) GenerateRoute(startLat, startLng, distanceKm float64, seed int64) *RouteResult {
	loop := route.GenerateLoop(startLat, startLng, distanceKm, seed)
	return &RouteResult{
		Polyline:   route.EncodePolyline(loop.Points),
		Points:     loop.Points,
		DistanceKm: loop.DistanceKm,
	}
}

// ExportRouteRequest names a point sequence to upload to Strava.
type ExportRouteRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Points      []route.Point `json:"points"`
}

// ExportResult reports the upload's fate.
type ExportResult struct {
	UploadID   int64  `json:"upload_id"`
	ActivityID *int64 `json:"activity_id,omitempty"`
	Status     string `json:"status"`
}

// ExportRoute serializes the points to GPX, uploads the file, and polls
// the upload a bounded number of times at a fixed interval.
func (s *Service) ExportRoute(ctx context.Context, req ExportRouteRequest) (*ExportResult, error) {
	if len(req.Points) == 0 {
		return nil, errors.New("export needs at least one point")
	}
	if req.Name == "" {
		req.Name = "runcoach route"
	}

	doc := route.GPXDocument{
		Name:        req.Name,
		Description: req.Description,
		Author:      "runcoach",
		Points:      req.Points,
	}
	gpx := doc.Render()
	if !route.ValidateGPX(gpx) {
		return nil, errors.New("rendered GPX failed structural check")
	}

	upload, err := s.source.UploadRoute(ctx, req.Name, gpx)
	if err != nil {
		return nil, fmt.Errorf("uploading route: %w", err)
	}
	s.logger.Info("route uploaded", "upload_id", upload.ID, "name", req.Name)

	final, err := s.source.WaitForUpload(ctx, upload.ID, UploadPollAttempts, UploadPollDelay)
	if errors.Is(err, strava.ErrUploadPending) {
		// Ran out of attempts but the upload may still land; report
		// what we know instead of failing the tool call.
		s.logger.Warn("upload still processing", "upload_id", upload.ID)
		status := "processing"
		if final != nil && final.Status != "" {
			status = final.Status
		}
		return &ExportResult{UploadID: upload.ID, Status: status}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("polling upload %d: %w", upload.ID, err)
	}

	return &ExportResult{
		UploadID:   final.ID,
		ActivityID: final.ActivityID,
		Status:     final.Status,
	}, nil
}
