package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/respond"
)

// Status is the liveness payload. It does not touch the model provider or
// the database.
type Status struct {
	OK bool `json:"ok"`
}

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns a simple health payload.
func (s *Service) Status() Status {
	return Status{OK: true}
}

// Handler serves the health endpoint.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status())
	}
}
