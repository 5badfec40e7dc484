package runs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/respond"
)

// Handler exposes the parse-run audit log.
type Handler struct {
	Repo Repo
	// Guard runs before every run route, e.g. token auth.
	Guard []gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, guard ...gin.HandlerFunc) *Handler {
	return &Handler{Repo: repo, Guard: guard}
}

// RegisterRoutes attaches run routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/parse-runs", h.Guard...)
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	limit := DefaultListLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "limit must be an integer", "")
			return
		}
		limit = parsed
	}

	items, err := h.Repo.ListRecent(c.Request.Context(), ClampLimit(limit))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Internal error", "failed to list parse runs")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	run, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "parse run not found", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Internal error", "failed to fetch parse run")
		return
	}
	respond.OK(c, run)
}
