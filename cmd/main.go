package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/saywith/saywith-server/internal/config"
	"github.com/saywith/saywith-server/internal/delivery"
	ws "github.com/saywith/saywith-server/internal/delivery/ws"
	"github.com/saywith/saywith-server/internal/domain"
	"github.com/saywith/saywith-server/internal/infra"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// CONFIG
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	if cfg.Database.URL == "" {
		panic("DATABASE_URL is not set")
	}
	if cfg.Auth.PIN == "" {
		panic("SAYWITH_PIN is not set")
	}
	if cfg.Auth.Secret == "" {
		panic("AUTH_SECRET is not set")
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	// STORE
	repo := infra.NewPostgresMessageRepo(pool)
	if err := repo.Init(ctx); err != nil {
		panic("message store init failed: " + err.Error())
	}

	// BLOB BACKEND
	uploader, err := infra.NewUploader(cfg.Upload)
	if err != nil {
		panic("uploader init failed: " + err.Error())
	}

	// SERVICES
	authService := domain.NewAuthService(cfg.Auth.PIN, cfg.Auth.Secret)
	messageService := domain.NewMessageService(repo, uploader, cfg.Share.BaseURL)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range messageService.Events() {

			payload, err := json.Marshal(map[string]string{
				"id":     ev.ID,
				"action": ev.Action,
			})
			if err != nil {
				log.Printf("[events] json marshal failed: %v", err)
				continue
			}

			hub.SendToRoom(ev.ID, payload)
			hub.SendToRoom(ws.RoomAll, payload)
		}
	}()

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService, zl)
	messageHandler := delivery.NewMessageHandler(messageService, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, authHandler, authService, messageHandler)

	r.Get("/ws", ws.SubscribeHandler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields: map[string]any{
			"port":     cfg.Server.Port,
			"provider": cfg.Upload.Provider,
		},
	})

	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
