package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// JobReporter describes the background housekeeping jobs.
type JobReporter interface {
	Status() map[string]interface{}
}

type HealthHandler struct {
	jobs JobReporter
}

func NewHealthHandler(jobs JobReporter) *HealthHandler {
	return &HealthHandler{jobs: jobs}
}

func (h *HealthHandler) Check(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"message":   "Catalog is running",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if h.jobs != nil {
		body["scheduler"] = h.jobs.Status()
	}

	c.JSON(http.StatusOK, body)
}
