package main

import (
	"log"

	"github.com/noahfaas/relationship-y/internal/config"
	"github.com/noahfaas/relationship-y/internal/database"
	"github.com/noahfaas/relationship-y/internal/handlers"
	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	_ "github.com/noahfaas/relationship-y/docs"
)

// @title           relationship-y API
// @version         1.0
// @description     Reveal-coordination service: paired participants answer shared questions with client-side encryption, the server only ever brokers ciphertext.
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.SeedBank(db)

	hub := ws.NewHub()

	r := handlers.NewRouter(handlers.RouterDeps{
		Auth:        services.NewAuthService(db, cfg.JWTSecret),
		Rooms:       services.NewRoomService(db),
		Questions:   services.NewQuestionService(db),
		Answers:     services.NewAnswerService(db),
		Coordinator: services.NewRevealCoordinator(db, hub),
		Projections: services.NewProjectionService(db),
		Bank:        services.NewBankService(db),
		Hub:         hub,
	})

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
