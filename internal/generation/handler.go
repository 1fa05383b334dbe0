package generation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/session"
	"jobforge-backend/internal/shared/server/respond"
	"jobforge-backend/internal/synthesis"
	"jobforge-backend/resume/render"
)

// Handler exposes the generation pipeline over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the endpoints on the API group. Extra middleware
// (rate limiting) applies to generate only; downloads stay cheap.
func (h *Handler) RegisterRoutes(r gin.IRouter, generateMiddleware ...gin.HandlerFunc) {
	r.POST("/generate", append(generateMiddleware, h.generate)...)
	r.GET("/resume/download", h.download)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.svc.Generate(c.Request.Context(), req.JobDescription)
	if err != nil {
		h.generateError(c, err)
		return
	}

	c.Set("generationId", entry.ID)
	c.JSON(http.StatusOK, GenerateResponse{
		ID:        entry.ID,
		JobInfo:   entry.Record,
		Email:     entry.Content.EmailBody,
		ResumeURL: "/api/v1/resume/download",
	})
}

func (h *Handler) generateError(c *gin.Context, err error) {
	var allErr *llm.AllProvidersError
	switch {
	case errors.Is(err, ErrEmptyJobDescription):
		respond.Error(c, http.StatusBadRequest, "validation_error", "job description required", nil)
	case errors.Is(err, llm.ErrNoProviders):
		respond.Error(c, http.StatusServiceUnavailable, "llm_not_configured", "no llm provider configured", nil)
	case errors.As(err, &allErr):
		respond.Error(c, http.StatusServiceUnavailable, "all_providers_failed", "all llm providers failed", providerFailures(allErr))
	case errors.Is(err, jobinfo.ErrExtraction):
		respond.Error(c, http.StatusBadGateway, "extraction_failed", "could not extract job info from the description", nil)
	case errors.Is(err, synthesis.ErrSynthesis):
		respond.Error(c, http.StatusBadGateway, "synthesis_failed", "could not generate email and resume", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "generation failed", nil)
	}
}

// providerFailures keeps one entry per provider, in fallback order.
func providerFailures(allErr *llm.AllProvidersError) map[string]any {
	failures := make([]map[string]any, 0, len(allErr.Failures))
	for _, f := range allErr.Failures {
		failures = append(failures, map[string]any{
			"provider": f.Provider,
			"kind":     string(f.Kind),
		})
	}
	return map[string]any{"failures": failures}
}

func (h *Handler) download(c *gin.Context) {
	format := c.DefaultQuery("format", "pdf")
	company := c.Query("company")

	artifact, err := h.svc.Download(c.Request.Context(), format, company)
	if err != nil {
		switch {
		case errors.Is(err, render.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "unsupported_format", "format must be pdf or docx", nil)
		case errors.Is(err, session.ErrNoActiveSession):
			respond.Error(c, http.StatusNotFound, "no_active_session", "no resume generated yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to render resume", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Data(http.StatusOK, artifact.Format.ContentType(), artifact.Data)
}
