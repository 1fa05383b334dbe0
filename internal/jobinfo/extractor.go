package jobinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jobforge-backend/internal/extract"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/shared/telemetry"
)

// Router routes one completion across the configured providers.
type Router interface {
	Route(ctx context.Context, req llm.Request) (string, error)
}

// ErrExtraction means the model output could not be shaped into a
// record even after the repair pass. Provider failures are not wrapped
// in it; they propagate as-is.
var ErrExtraction = errors.New("job info extraction failed")

const (
	extractMaxTokens   = 500
	extractTemperature = 0.7
)

// Extractor turns free-form job descriptions into structured records.
type Extractor struct {
	router Router
}

func NewExtractor(router Router) *Extractor {
	return &Extractor{router: router}
}

// Extract runs the extraction prompt and decodes the response. A
// response that cannot be decoded gets exactly one repair round trip
// before the operation fails with ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, jobDescription string) (Record, error) {
	raw, err := e.router.Route(ctx, llm.Request{
		Prompt:      extractionPrompt(jobDescription),
		MaxTokens:   extractMaxTokens,
		Temperature: extractTemperature,
		JSONOnly:    true,
	})
	if err != nil {
		return Record{}, fmt.Errorf("extract job info: %w", err)
	}

	record, parseErr := decodeRecord(raw)
	if parseErr == nil {
		return record, nil
	}
	telemetry.Info("jobinfo.repair_attempt", map[string]any{"parse_error": parseErr.Error()})

	repaired, err := e.router.Route(ctx, llm.Request{
		Prompt:    repairPrompt(raw),
		MaxTokens: extractMaxTokens,
		JSONOnly:  true,
	})
	if err != nil {
		return Record{}, fmt.Errorf("repair job info: %w", err)
	}

	record, parseErr = decodeRecord(repaired)
	if parseErr != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrExtraction, parseErr)
	}
	return record, nil
}

func decodeRecord(raw string) (Record, error) {
	payload, err := extract.JSONObject(raw)
	if err != nil {
		return Record{}, err
	}
	if err := validatePayload([]byte(payload)); err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return Record{}, err
	}
	record.Normalize()
	return record, nil
}
