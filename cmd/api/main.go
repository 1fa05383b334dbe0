package main

import (
	"log"

	"jobforge-backend/internal/bootstrap"
	"jobforge-backend/internal/shared/config"
	"jobforge-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (providers: %v)", addr, app.LLMRouter.Providers())

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
