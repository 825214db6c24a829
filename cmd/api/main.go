package main

import (
	"log"

	"github.com/joho/godotenv"

	"projectpulse/internal/api"
	"projectpulse/internal/config"
	"projectpulse/internal/container"
)

// Headless JSON API over the KPI pipeline, for consumers that do not want
// the HTML dashboard.
func main() {
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

	server := api.NewServer(deps.Dashboard)
	log.Fatal(server.Start(":" + appConfig.Server.APIPort))
}
