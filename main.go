package main

import (
	"log"

	"github.com/joho/godotenv"

	"projectpulse/internal/config"
	"projectpulse/internal/container"
	"projectpulse/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}
	defer deps.Shutdown()

	server, err := ui.NewServer(deps.Dashboard, deps.Tracker)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
