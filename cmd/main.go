// Package main is the entry point for the grind calculator service.
//
// @title           Grind Calculator API
// @version         1.0.0
// @description     Material quantity calculator and step wizard for gravel, split and sand products.
//
//	Computes the volume and weight needed for an area and layer thickness and picks the best fitting bag.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/grind-calculator
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key. Required for the settings endpoints when ADMIN_API_KEY_HASHES is set.
//
// @tag.name        Session
// @tag.description Anonymous session tokens
//
// @tag.name        Catalog
// @tag.description Catalog lookups for the calculator
//
// @tag.name        Calculator
// @tag.description Quantity calculation
//
// @tag.name        Wizard
// @tag.description Step wizard state
//
// @tag.name        Settings
// @tag.description Calculator settings administration
//
// @tag.name        Logs
// @tag.description Stored request and audit log
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	_ "github.com/guttosm/grind-calculator/docs" // swagger docs
	"github.com/guttosm/grind-calculator/internal/app"
)

func main() {
	// Outside production a local .env fills in unset variables
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("Failed to load .env file")
		}
	}

	cfg := config.Load()
	ctx := context.Background()

	application, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		_ = application.Close(context.Background())
	}()

	server := app.NewServer(application.Router, cfg.Server)
	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
