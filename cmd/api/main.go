package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"rpascope/internal/config"
	"rpascope/internal/container"
	"rpascope/ui"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to assemble application: %v", err)
	}
	defer c.Close()

	server := ui.NewServer(c)
	if err := server.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
