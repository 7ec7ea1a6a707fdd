package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tavisry/marketlens/internal/utils"
)

// envelope is the uniform response wrapper. Stale marks values served from
// the last-known-good store during an upstream outage.
type envelope struct {
	Data      interface{} `json:"data"`
	Stale     bool        `json:"stale"`
	Timestamp time.Time   `json:"timestamp"`
}

type errorEnvelope struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func respondData(c *gin.Context, data interface{}, stale bool) {
	c.JSON(http.StatusOK, envelope{
		Data:      data,
		Stale:     stale,
		Timestamp: time.Now().UTC(),
	})
}

// respondError maps error kinds to status codes: not-found 404,
// invalid-parameter 400, upstream-unavailable 502, anything else 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case utils.IsNotFound(err):
		status = http.StatusNotFound
	case utils.IsInvalidParameter(err):
		status = http.StatusBadRequest
	case utils.IsUpstream(err):
		status = http.StatusBadGateway
	}
	c.JSON(status, errorEnvelope{
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	})
}
