package parsing

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-parser/internal/profile"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/util"
)

// DefaultMaxUploadBytes caps the request body of the parse route.
const DefaultMaxUploadBytes int64 = 10 << 20 // 10MB

const (
	RunIDHeader = "X-Parse-Run-Id"

	msgFileRequired    = "file is required"
	msgFileTooLarge    = "File too large"
	msgUnsupportedType = "Unsupported file type. Use .pdf, .docx or .tex"
	msgExtractFailed   = "Could not extract text from resume"
	msgSchemaMismatch  = "LLM output did not match schema"
	msgInternal        = "Internal error"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	// ParseMiddleware runs before the parse handler only, e.g. rate limiting.
	ParseMiddleware []gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64, parseMiddleware ...gin.HandlerFunc) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes, ParseMiddleware: parseMiddleware}
}

// RegisterRoutes attaches parse routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chain := append([]gin.HandlerFunc{}, h.ParseMiddleware...)
	rg.POST("/parse-resume", append(chain, h.parse)...)
	rg.GET("/profile-schema", h.schema)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, msgFileTooLarge, "")
			return
		}
		respond.Error(c, http.StatusBadRequest, msgFileRequired, "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, msgFileRequired, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, msgFileTooLarge, "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, msgInternal, util.SanitizeError(err))
		return
	}
	if data == nil {
		data = []byte{}
	}

	runID := uuid.NewString()
	c.Header(RunIDHeader, runID)

	result, err := h.Svc.Parse(c.Request.Context(), Upload{
		RunID:       runID,
		RequestID:   c.GetString("requestId"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeParseError(c, err)
		return
	}

	respond.OK(c, result)
}

func writeParseError(c *gin.Context, err error) {
	var (
		inErr  *InputError
		exErr  *ExtractionError
		outErr *ModelOutputError
	)
	switch {
	case errors.As(err, &inErr):
		if errors.Is(err, ErrUnsupportedType) {
			respond.Error(c, http.StatusUnsupportedMediaType, msgUnsupportedType, "")
			return
		}
		respond.Error(c, http.StatusBadRequest, msgFileRequired, "")
	case errors.As(err, &exErr):
		respond.Error(c, http.StatusUnprocessableEntity, msgExtractFailed, "")
	case errors.As(err, &outErr):
		respond.ErrorWithRaw(c, http.StatusBadGateway, msgSchemaMismatch, util.SanitizeMessage(outErr.Detail), outErr.Raw)
	default:
		respond.Error(c, http.StatusInternalServerError, msgInternal, util.SanitizeError(err))
	}
}

func (h *Handler) schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/schema+json", profile.JSONSchema())
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
