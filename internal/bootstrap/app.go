package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobforge-backend/internal/generation"
	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/llm/gemini"
	"jobforge-backend/internal/llm/openaicompat"
	"jobforge-backend/internal/profile"
	"jobforge-backend/internal/services/health"
	"jobforge-backend/internal/session"
	"jobforge-backend/internal/shared/config"
	"jobforge-backend/internal/shared/server"
	"jobforge-backend/internal/shared/server/middleware"
	"jobforge-backend/internal/shared/telemetry"
	"jobforge-backend/internal/synthesis"
)

// Chat-completions endpoints for the OpenAI-compatible providers.
const (
	cerebrasBaseURL   = "https://api.cerebras.ai/v1/chat/completions"
	groqBaseURL       = "https://api.groq.com/openai/v1/chat/completions"
	openRouterBaseURL = "https://openrouter.ai/api/v1/chat/completions"

	openRouterReferer = "https://github.com/resume-generator"
	openRouterTitle   = "Resume Generator"
)

// App holds shared dependencies behind the HTTP surface.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	Profile   profile.Profile
	LLMRouter *llm.Router
	Sessions  *session.Store
	Service   *generation.Service
}

// Build prepares all dependencies and wires the router. It fails when no
// candidate resume can be loaded; a missing provider credential only skips
// that provider.
func Build(cfg config.Config) (*App, error) {
	prof, err := profile.Load(cfg.ProfileDir, CandidateIdentity(cfg))
	if err != nil {
		return nil, fmt.Errorf("load candidate profile: %w", err)
	}

	llmRouter := llm.NewRouter(BuildClients(context.Background(), cfg)...)
	if len(llmRouter.Providers()) == 0 {
		telemetry.Error("bootstrap.no_providers", map[string]any{
			"order": strings.Join(cfg.ProviderOrder, ","),
		})
	}

	sessions := session.NewStore()
	svc := generation.NewService(
		jobinfo.NewExtractor(llmRouter),
		synthesis.NewSynthesizer(llmRouter, prof),
		sessions,
	)

	app := &App{
		Config:    cfg,
		Profile:   prof,
		LLMRouter: llmRouter,
		Sessions:  sessions,
		Service:   svc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		Generation: generation.NewHandler(svc),
		Health:     health.NewService(llmRouter.Providers()),
		Limiter:    middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// CandidateIdentity assembles the candidate contact block from config.
func CandidateIdentity(cfg config.Config) profile.Identity {
	return profile.Identity{
		Name:     cfg.CandidateName,
		Email:    cfg.CandidateEmail,
		Phone:    cfg.CandidatePhone,
		LinkedIn: cfg.CandidateLinkedIn,
		Location: cfg.CandidateLocation,
	}
}

// BuildClients instantiates one client per configured provider, preserving
// the fallback order. Providers without credentials are skipped.
func BuildClients(ctx context.Context, cfg config.Config) []llm.Client {
	var clients []llm.Client
	for _, name := range cfg.ProviderOrder {
		name = strings.ToLower(strings.TrimSpace(name))
		client, err := buildClient(ctx, cfg, name)
		if err != nil {
			telemetry.Error("bootstrap.provider_skipped", map[string]any{
				"provider": name,
				"error":    err.Error(),
			})
			continue
		}
		if client == nil {
			continue
		}
		clients = append(clients, client)
		telemetry.Info("bootstrap.provider_ready", map[string]any{"provider": name})
	}
	return clients
}

func buildClient(ctx context.Context, cfg config.Config, name string) (llm.Client, error) {
	switch name {
	case config.ProviderCerebras:
		if strings.TrimSpace(cfg.CerebrasAPIKey) == "" {
			return nil, nil
		}
		return openaicompat.New(openaicompat.Options{
			Name:    config.ProviderCerebras,
			BaseURL: cerebrasBaseURL,
			APIKey:  cfg.CerebrasAPIKey,
			Model:   cfg.CerebrasModel,
			Timeout: cfg.LLMTimeout,
		}), nil
	case config.ProviderGroq:
		if strings.TrimSpace(cfg.GroqAPIKey) == "" {
			return nil, nil
		}
		return openaicompat.New(openaicompat.Options{
			Name:    config.ProviderGroq,
			BaseURL: groqBaseURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			Timeout: cfg.LLMTimeout,
		}), nil
	case config.ProviderOpenRouter:
		if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
			return nil, nil
		}
		return openaicompat.New(openaicompat.Options{
			Name:    config.ProviderOpenRouter,
			BaseURL: openRouterBaseURL,
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			Timeout: cfg.LLMTimeout,
			ExtraHeaders: map[string]string{
				"HTTP-Referer": openRouterReferer,
				"X-Title":      openRouterTitle,
			},
			// OpenRouter's free tier rejects response_format for some
			// models, so rely on the prompt contract instead.
			DisableJSONMode: true,
		}), nil
	case config.ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, nil
		}
		return gemini.New(ctx, gemini.Options{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
