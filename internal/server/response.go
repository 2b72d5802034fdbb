package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"runcoach/internal/strava"
)

// Response is the envelope every tool endpoint returns. Code 0 means
// success; otherwise it mirrors the HTTP status.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// upstreamError maps Strava failures onto the response envelope. A
// rejected token is the server's problem, not the caller's, so it
// surfaces as a gateway error rather than a 401 that the chat host
// would misread as its own auth failing.
func upstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, strava.ErrUnauthorized):
		respondError(c, http.StatusBadGateway, "strava rejected the configured credentials")
	case errors.Is(err, strava.ErrRateLimited):
		respondError(c, http.StatusServiceUnavailable, "strava rate limit reached, retry later")
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
