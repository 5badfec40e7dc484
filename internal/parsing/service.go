package parsing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/profile"
	"resume-parser/internal/runs"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/shared/util"
)

const (
	DefaultMinTextChars = 40
	DefaultLLMTimeout   = 60 * time.Second
)

// Upload is one received document.
type Upload struct {
	RunID       string
	RequestID   string
	FileName    string
	ContentType string
	// Data is nil when no file was sent. An empty non-nil slice is a
	// zero-byte file and goes through kind detection like any other.
	Data []byte
}

// Meta describes the extracted text.
type Meta struct {
	Chars int          `json:"chars"`
	Kind  extract.Kind `json:"kind"`
}

// Result is the successful outcome of a parse.
type Result struct {
	Profile profile.Profile `json:"profile"`
	Meta    Meta            `json:"meta"`
}

// TextExtractor turns document bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, kind extract.Kind) (string, error)
}

// Service runs the upload to profile pipeline.
type Service struct {
	Extractor TextExtractor
	LLM       llm.Client
	Runs      runs.Repo
	Archive   *Archiver

	Provider       string
	Model          string
	MinTextChars   int
	LLMTimeout     time.Duration
	RepairAttempts int

	now func() time.Time
}

// NewService constructs a Service with default limits.
func NewService(extractor TextExtractor, client llm.Client, repo runs.Repo) *Service {
	return &Service{
		Extractor:    extractor,
		LLM:          client,
		Runs:         repo,
		MinTextChars: DefaultMinTextChars,
		LLMTimeout:   DefaultLLMTimeout,
		now:          time.Now,
	}
}

// Parse detects the document kind, extracts its text, asks the model for a
// profile and validates the answer. Every call records one parse run.
func (s *Service) Parse(ctx context.Context, up Upload) (Result, error) {
	start := s.clock()
	metrics.IncParseRequests()
	if up.RunID == "" {
		up.RunID = uuid.NewString()
	}

	st := &tracker{stage: StageReceived}
	out := &outcome{}
	res, err := s.run(ctx, up, st, out)
	if err != nil {
		st.advance(StageError)
	}
	s.finish(ctx, up, st, out, start, err)
	return res, err
}

// outcome collects what the pipeline learned, for logging and the run record.
type outcome struct {
	kind  extract.Kind
	chars int
	text  string
}

func (s *Service) run(ctx context.Context, up Upload, st *tracker, out *outcome) (Result, error) {
	if up.Data == nil {
		return Result{}, &InputError{Err: ErrFileRequired}
	}

	out.kind = extract.DetectKind(up.FileName, up.ContentType)
	if out.kind == extract.KindUnknown {
		return Result{}, &InputError{Err: fmt.Errorf("%w: %q", ErrUnsupportedType, up.FileName)}
	}
	st.advance(StageKindDetected)

	text, err := s.Extractor.Extract(ctx, up.Data, out.kind)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, &ExtractionError{Kind: out.kind, Err: err}
	}
	out.text = text
	out.chars = utf8.RuneCountInString(text)
	if utf8.RuneCountInString(strings.TrimSpace(text)) < s.minTextChars() {
		return Result{}, &ExtractionError{Kind: out.kind, Chars: out.chars, Err: ErrInsufficientText}
	}
	st.advance(StageTextExtracted)

	p, err := s.extractProfile(ctx, up, text, st)
	if err != nil {
		return Result{}, err
	}
	st.advance(StageDone)

	return Result{Profile: p, Meta: Meta{Chars: out.chars, Kind: out.kind}}, nil
}

// extractProfile calls the model and validates its answer, re-prompting with
// the validation detail up to RepairAttempts times.
func (s *Service) extractProfile(ctx context.Context, up Upload, text string, st *tracker) (profile.Profile, error) {
	input := llm.ExtractInput{ResumeText: text}
	for attempt := 0; ; attempt++ {
		raw, err := s.invoke(ctx, input)
		if err != nil {
			return profile.Profile{}, err
		}
		st.advance(StageModelInvoked)

		p, err := profile.Parse(raw)
		if err == nil {
			st.advance(StageValidated)
			return p, nil
		}

		detail := err.Error()
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			detail = verr.Detail()
		}
		if attempt >= s.RepairAttempts {
			return profile.Profile{}, &ModelOutputError{Raw: raw, Detail: detail, Err: err}
		}

		telemetry.Warn("parse.repair", map[string]any{
			"run_id":  up.RunID,
			"attempt": attempt + 1,
			"detail":  util.SanitizeMessage(detail),
		})
		input.RepairRaw = raw
		input.RepairReason = detail
	}
}

func (s *Service) invoke(ctx context.Context, input llm.ExtractInput) (string, error) {
	if s.LLM == nil {
		return "", &ModelTransportError{Err: llm.ErrNotConfigured}
	}
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.LLMTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.LLMTimeout)
	}
	defer cancel()

	started := s.clock()
	raw, err := s.LLM.ExtractProfile(callCtx, input)
	metrics.ObserveLLMDurationMs(float64(s.clock().Sub(started).Milliseconds()))
	if err != nil {
		return "", &ModelTransportError{Err: err}
	}
	return raw, nil
}

func (s *Service) finish(ctx context.Context, up Upload, st *tracker, out *outcome, start time.Time, err error) {
	duration := s.clock().Sub(start)
	metrics.ObserveParseDurationMs(float64(duration.Milliseconds()))

	run := runs.Run{
		ID:          up.RunID,
		RequestID:   up.RequestID,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		SizeBytes:   int64(len(up.Data)),
		Kind:        string(out.kind),
		Chars:       out.chars,
		Stage:       string(st.Reached()),
		Status:      runs.StatusSucceeded,
		Provider:    s.Provider,
		Model:       s.Model,
		DurationMs:  duration.Milliseconds(),
		CreatedAt:   start.UTC(),
	}
	if len(up.Data) > 0 {
		run.Checksum = util.Checksum(up.Data)
	}

	// Bookkeeping outlives a canceled request.
	bg := context.WithoutCancel(ctx)

	if s.Archive != nil && len(up.Data) > 0 {
		key, aerr := s.Archive.Archive(bg, up.RunID, up, out.text)
		if aerr != nil {
			telemetry.Warn("parse.archive_failed", map[string]any{
				"run_id": up.RunID,
				"error":  util.SanitizeError(aerr),
			})
		}
		run.ArchiveKey = key
	}

	fields := map[string]any{
		"run_id":      up.RunID,
		"request_id":  up.RequestID,
		"kind":        string(out.kind),
		"chars":       out.chars,
		"size_bytes":  run.SizeBytes,
		"duration_ms": run.DurationMs,
	}
	if err != nil {
		reason := Reason(err)
		run.Status = runs.StatusFailed
		run.ErrorKind = reason
		run.ErrorDetail = util.SanitizeError(err)

		metrics.IncParseFailed(reason)
		fields["stage"] = string(st.Reached())
		fields["reason"] = reason
		fields["error"] = run.ErrorDetail
		telemetry.Error("parse.failed", fields)
	} else {
		metrics.IncParseSucceeded()
		telemetry.Info("parse.done", fields)
	}

	if s.Runs == nil {
		return
	}
	if rerr := s.Runs.Create(bg, run); rerr != nil {
		telemetry.Error("parse.run_record_failed", map[string]any{
			"run_id": up.RunID,
			"error":  util.SanitizeError(rerr),
		})
	}
}

func (s *Service) minTextChars() int {
	if s.MinTextChars < 0 {
		return 0
	}
	return s.MinTextChars
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
