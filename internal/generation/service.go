package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/session"
	"jobforge-backend/internal/shared/metrics"
	"jobforge-backend/internal/shared/telemetry"
	"jobforge-backend/internal/synthesis"
	"jobforge-backend/resume/render"
)

// Extractor is the first model-backed stage of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, jobDescription string) (jobinfo.Record, error)
}

// Synthesizer is the second model-backed stage of the pipeline.
type Synthesizer interface {
	Synthesize(ctx context.Context, record jobinfo.Record, jobDescription string) (synthesis.Content, error)
}

// ErrEmptyJobDescription rejects generate calls with nothing to work on.
var ErrEmptyJobDescription = errors.New("job description required")

// Service runs the generation pipeline and serves downloads from the
// active session. Documents are rendered lazily per download request,
// never stored.
type Service struct {
	extractor Extractor
	synth     Synthesizer
	sessions  *session.Store
	now       func() time.Time
	newID     func() string
}

func NewService(extractor Extractor, synth Synthesizer, sessions *session.Store) *Service {
	return &Service{
		extractor: extractor,
		synth:     synth,
		sessions:  sessions,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Generate extracts the job record, synthesizes the email and resume,
// and replaces the active session. Nothing is stored when any stage
// fails.
func (s *Service) Generate(ctx context.Context, jobDescription string) (session.Entry, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return session.Entry{}, ErrEmptyJobDescription
	}

	metrics.IncGenerationStarted()
	started := s.now()

	record, err := s.extractor.Extract(ctx, jobDescription)
	if err != nil {
		metrics.IncGenerationFailed()
		return session.Entry{}, err
	}

	content, err := s.synth.Synthesize(ctx, record, jobDescription)
	if err != nil {
		metrics.IncGenerationFailed()
		return session.Entry{}, err
	}

	entry := session.Entry{
		ID:             s.newID(),
		JobDescription: jobDescription,
		Record:         record,
		Content:        content,
		GeneratedAt:    s.now().UTC(),
	}
	if err := s.sessions.Put(ctx, entry); err != nil {
		metrics.IncGenerationFailed()
		return session.Entry{}, err
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(s.now().Sub(started)) / float64(time.Millisecond))
	telemetry.Info("generation.complete", map[string]any{
		"generation_id": entry.ID,
		"company":       record.Company,
		"job_title":     record.JobTitle,
	})
	return entry, nil
}

// Download renders the active session's resume in the requested format.
// The format is validated before the session is read, so an unsupported
// format never touches session state. companyHint only influences the
// suggested file name.
func (s *Service) Download(ctx context.Context, rawFormat, companyHint string) (render.Artifact, error) {
	format, err := render.ParseFormat(rawFormat)
	if err != nil {
		return render.Artifact{}, err
	}

	entry, err := s.sessions.Get(ctx)
	if err != nil {
		return render.Artifact{}, err
	}

	data, err := render.Render(entry.Content.Resume, format)
	if err != nil {
		return render.Artifact{}, err
	}

	metrics.IncDownload()

	company := strings.TrimSpace(companyHint)
	if company == "" && entry.Record.Company != jobinfo.Unknown {
		company = entry.Record.Company
	}
	return render.Artifact{
		Data:     data,
		Format:   format,
		FileName: render.SuggestFileName(company, format),
	}, nil
}
