package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-map/internal/projection"
	"weather-map/internal/providers"
	"weather-map/internal/types"
)

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Error string `json:"error" example:"latitude must be between -90 and 90"`
}

// respondError maps err to a status: 400 for bad input, 502 when an upstream
// API failed, 500 for anything else. message replaces err's text for 5xx.
func (app *App) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, types.ErrInvalidLatitude),
		errors.Is(err, types.ErrInvalidLongitude),
		errors.Is(err, projection.ErrOutsideMap):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var fetchErr *providers.FetchError
	if errors.As(err, &fetchErr) {
		app.logger.Error(message,
			"provider", fetchErr.Provider,
			"kind", fetchErr.Kind.String(),
			"error", err,
		)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: message})
		return
	}

	app.logger.Error(message, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
