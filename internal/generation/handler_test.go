package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobforge-backend/internal/generation"
	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/profile"
	"jobforge-backend/internal/session"
	"jobforge-backend/internal/synthesis"
)

const extractionJSON = `{
	"job_title": "Senior Backend Engineer",
	"company": "Acme Corp",
	"location": "San Jose, CA",
	"job_type": "Hybrid",
	"key_skills": ["Go", "Kubernetes", "PostgreSQL"]
}`

const synthesisJSON = `{
	"email_body": "Thank you for considering my application. I am available for an interview any weekday.",
	"tailored_resume": {
		"title": "Senior Backend Engineer",
		"summary": "Backend engineer with nine years of Go and distributed systems experience.",
		"skills": [
			{"category": "Languages", "items": "Go, Python, SQL"},
			{"category": "Infrastructure", "items": "Kubernetes, PostgreSQL, AWS"}
		],
		"experience": [
			{
				"title": "Senior Backend Engineer",
				"company": "Initech",
				"location": "Remote",
				"dates": "Jun 2022 - Present",
				"points": ["Cut p99 latency 40% by rewriting the ingestion path in Go."]
			}
		]
	}
}`

// scriptedClient plays back canned completions in order, then fails.
type scriptedClient struct {
	name      string
	responses []string
	calls     int
}

func (s *scriptedClient) Name() string { return s.name }

func (s *scriptedClient) Complete(_ context.Context, _ llm.Request) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", &llm.ProviderError{Provider: s.name, Kind: llm.FailInvalidResponse, Err: errors.New("script exhausted")}
}

type fixedExtractor struct {
	record jobinfo.Record
	err    error
}

func (f *fixedExtractor) Extract(context.Context, string) (jobinfo.Record, error) {
	return f.record, f.err
}

type fixedSynthesizer struct {
	content synthesis.Content
	err     error
}

func (f *fixedSynthesizer) Synthesize(context.Context, jobinfo.Record, string) (synthesis.Content, error) {
	return f.content, f.err
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Failures []struct {
				Provider string `json:"provider"`
				Kind     string `json:"kind"`
			} `json:"failures"`
		} `json:"details"`
	} `json:"error"`
}

func testProfile() profile.Profile {
	return profile.Profile{
		Identity: profile.Identity{
			Name:     "Jordan Reyes",
			Email:    "jordan.reyes@example.com",
			Phone:    "(415) 555-0192",
			LinkedIn: "linkedin.com/in/jordanreyes",
			Location: "San Jose, CA",
		},
		ResumeText: "Jordan Reyes. Backend engineer. Go, Kubernetes, PostgreSQL.",
		Source:     "resume.txt",
	}
}

func newPipelineRouter(t *testing.T, responses ...string) *gin.Engine {
	t.Helper()

	llmRouter := llm.NewRouter(&scriptedClient{name: "cerebras", responses: responses})
	svc := generation.NewService(
		jobinfo.NewExtractor(llmRouter),
		synthesis.NewSynthesizer(llmRouter, testProfile()),
		session.NewStore(),
	)
	return newGenerationRouter(t, svc)
}

func newStubRouter(t *testing.T, ext generation.Extractor, synth generation.Synthesizer) *gin.Engine {
	t.Helper()
	return newGenerationRouter(t, generation.NewService(ext, synth, session.NewStore()))
}

func newGenerationRouter(t *testing.T, svc *generation.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	api := router.Group("/api/v1")
	generation.NewHandler(svc).RegisterRoutes(api)
	return router
}

func postGenerate(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func getDownload(router *gin.Engine, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/download"+query, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return envelope
}

func TestGenerateEndToEnd(t *testing.T) {
	router := newPipelineRouter(t, extractionJSON, synthesisJSON)

	resp := postGenerate(router, `{"job_description": "Acme Corp seeks a Senior Backend Engineer in San Jose, CA. Hybrid. Go, Kubernetes, PostgreSQL."}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body generation.GenerateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID == "" {
		t.Fatal("expected generation id")
	}
	if body.JobInfo.Company != "Acme Corp" {
		t.Fatalf("company = %q", body.JobInfo.Company)
	}
	if body.JobInfo.JobType != "hybrid" {
		t.Fatalf("job type = %q, want normalized hybrid", body.JobInfo.JobType)
	}
	if !strings.Contains(body.Email, "Thank you") {
		t.Fatalf("unexpected email: %q", body.Email)
	}
	if body.ResumeURL != "/api/v1/resume/download" {
		t.Fatalf("resume url = %q", body.ResumeURL)
	}

	download := getDownload(router, "")
	if download.Code != http.StatusOK {
		t.Fatalf("download status %d: %s", download.Code, download.Body.String())
	}
	if ct := download.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := download.Header().Get("Content-Disposition"); cd != `attachment; filename="resume_acme_corp.pdf"` {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(download.Body.String(), "%PDF-") {
		t.Fatal("download body is not a pdf")
	}
}

func TestGenerateEndpointRejectsBlankDescription(t *testing.T) {
	router := newStubRouter(t, &fixedExtractor{}, &fixedSynthesizer{})

	for _, body := range []string{`{}`, `{"job_description": ""}`, `{"job_description": "   "}`} {
		resp := postGenerate(router, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status 400, got %d", body, resp.Code)
		}
		if envelope := decodeError(t, resp); envelope.Error.Code != "validation_error" {
			t.Fatalf("body %s: code = %q", body, envelope.Error.Code)
		}
	}
}

func TestGenerateEndpointRejectsMalformedJSON(t *testing.T) {
	router := newStubRouter(t, &fixedExtractor{}, &fixedSynthesizer{})

	resp := postGenerate(router, `{"job_description": `)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "validation_error" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestGenerateEndpointAllProvidersFailed(t *testing.T) {
	failure := &llm.AllProvidersError{Failures: []*llm.ProviderError{
		{Provider: "cerebras", Kind: llm.FailAuth},
		{Provider: "groq", Kind: llm.FailRateLimited},
		{Provider: "openrouter", Kind: llm.FailUnavailable},
	}}
	ext := &fixedExtractor{err: fmt.Errorf("extract job info: %w", failure)}
	router := newStubRouter(t, ext, &fixedSynthesizer{})

	resp := postGenerate(router, `{"job_description": "jd"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	envelope := decodeError(t, resp)
	if envelope.Error.Code != "all_providers_failed" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
	failures := envelope.Error.Details.Failures
	if len(failures) != 3 {
		t.Fatalf("failures = %+v", failures)
	}
	want := []struct{ provider, kind string }{
		{"cerebras", "auth_error"},
		{"groq", "rate_limited"},
		{"openrouter", "unavailable"},
	}
	for i, w := range want {
		if failures[i].Provider != w.provider || failures[i].Kind != w.kind {
			t.Fatalf("failure %d = %+v, want %+v", i, failures[i], w)
		}
	}
}

func TestGenerateEndpointNoProvidersConfigured(t *testing.T) {
	ext := &fixedExtractor{err: fmt.Errorf("extract job info: %w", llm.ErrNoProviders)}
	router := newStubRouter(t, ext, &fixedSynthesizer{})

	resp := postGenerate(router, `{"job_description": "jd"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "llm_not_configured" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestGenerateEndpointExtractionFailed(t *testing.T) {
	// Malformed model output, repair pass included, still undecodable.
	router := newPipelineRouter(t, "not json at all", "still not json")

	resp := postGenerate(router, `{"job_description": "jd"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "extraction_failed" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestGenerateEndpointSynthesisFailed(t *testing.T) {
	// Extraction succeeds, synthesis answers garbage and gets no repair pass.
	router := newPipelineRouter(t, extractionJSON, "garbage")

	resp := postGenerate(router, `{"job_description": "jd"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "synthesis_failed" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestDownloadEndpointWithoutSession(t *testing.T) {
	router := newStubRouter(t, &fixedExtractor{}, &fixedSynthesizer{})

	resp := getDownload(router, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "no_active_session" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "" {
		t.Fatalf("expected empty content disposition, got %s", cd)
	}
}

func TestDownloadEndpointUnsupportedFormat(t *testing.T) {
	// Format is rejected even before any session exists.
	router := newStubRouter(t, &fixedExtractor{}, &fixedSynthesizer{})

	resp := getDownload(router, "?format=txt")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Code != "unsupported_format" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestDownloadEndpointUnsupportedFormatKeepsSession(t *testing.T) {
	router := newPipelineRouter(t, extractionJSON, synthesisJSON)
	if resp := postGenerate(router, `{"job_description": "jd"}`); resp.Code != http.StatusOK {
		t.Fatalf("generate status %d: %s", resp.Code, resp.Body.String())
	}

	if resp := getDownload(router, "?format=txt"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if resp := getDownload(router, "?format=pdf"); resp.Code != http.StatusOK {
		t.Fatalf("session should survive a bad format request, got %d", resp.Code)
	}
}

func TestDownloadEndpointDocxWithCompanyHint(t *testing.T) {
	router := newPipelineRouter(t, extractionJSON, synthesisJSON)
	if resp := postGenerate(router, `{"job_description": "jd"}`); resp.Code != http.StatusOK {
		t.Fatalf("generate status %d: %s", resp.Code, resp.Body.String())
	}

	resp := getDownload(router, "?format=docx&company=Globex+Inc.")
	if resp.Code != http.StatusOK {
		t.Fatalf("download status %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="resume_globex_inc.docx"` {
		t.Fatalf("content disposition = %q", cd)
	}
	// Zip local file header.
	if !strings.HasPrefix(resp.Body.String(), "PK") {
		t.Fatal("download body is not a zip package")
	}
}
