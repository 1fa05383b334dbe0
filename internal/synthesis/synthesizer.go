package synthesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"jobforge-backend/internal/extract"
	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/profile"
	"jobforge-backend/resume/model"
)

// Router routes one completion across the configured providers.
type Router interface {
	Route(ctx context.Context, req llm.Request) (string, error)
}

// ErrSynthesis means the model response did not contain both a usable
// email and a usable resume. There is no repair pass here; the caller
// decides whether to retry the whole generation.
var ErrSynthesis = errors.New("content synthesis failed")

const (
	synthesisMaxTokens   = 4096
	synthesisTemperature = 0.5
)

// Synthesizer produces the outreach email and tailored resume from one
// completion.
type Synthesizer struct {
	router  Router
	profile profile.Profile
}

func NewSynthesizer(router Router, prof profile.Profile) *Synthesizer {
	return &Synthesizer{router: router, profile: prof}
}

// Synthesize runs the combined prompt and decodes both sections. The
// candidate identity always overrides whatever contact details the
// model wrote into the resume.
func (s *Synthesizer) Synthesize(ctx context.Context, record jobinfo.Record, jobDescription string) (Content, error) {
	raw, err := s.router.Route(ctx, llm.Request{
		System:      synthesisSystemPrompt,
		Prompt:      synthesisUserPrompt(record, jobDescription, s.profile),
		MaxTokens:   synthesisMaxTokens,
		Temperature: synthesisTemperature,
		JSONOnly:    true,
	})
	if err != nil {
		return Content{}, fmt.Errorf("synthesize content: %w", err)
	}

	content, parseErr := decodeContent(raw)
	if parseErr != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrSynthesis, parseErr)
	}

	s.applyIdentity(&content.Resume)
	content.Resume.Normalize()
	if err := content.Resume.Validate(); err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	content.EmailBody = strings.TrimSpace(content.EmailBody)
	if content.EmailBody == "" {
		return Content{}, fmt.Errorf("%w: empty email body", ErrSynthesis)
	}
	return content, nil
}

func decodeContent(raw string) (Content, error) {
	payload, err := extract.JSONObject(raw)
	if err != nil {
		return Content{}, err
	}
	if err := validatePayload([]byte(payload)); err != nil {
		return Content{}, err
	}
	var content Content
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return Content{}, err
	}
	return content, nil
}

func (s *Synthesizer) applyIdentity(resume *model.TailoredResume) {
	setIfPresent(&resume.Name, s.profile.Name)
	setIfPresent(&resume.Email, s.profile.Email)
	setIfPresent(&resume.Phone, s.profile.Phone)
	setIfPresent(&resume.LinkedIn, s.profile.LinkedIn)
	setIfPresent(&resume.Location, s.profile.Location)
}

func setIfPresent(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}
