package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"albahr-backend/internal/bot"
	intconfig "albahr-backend/internal/config"
	router "albahr-backend/internal/http"
	"albahr-backend/internal/sheets"
	"albahr-backend/internal/store"
	"albahr-backend/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	variant := intconfig.LoadVariant(env.VariantName)

	ctx := context.Background()
	bookings, err := sheets.NewStore(ctx, env, variant)
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}

	client := whatsapp.NewClient(env.WhatsAppToken, env.WhatsAppPhone)
	sessions := store.NewSessionStore()
	chats := store.NewChatStore()
	admin := store.NewAdminTracker()

	engine := bot.NewEngine(variant, client, bookings, sessions, chats, admin)

	r := router.NewRouter(router.Deps{
		Env:      env,
		Variant:  variant,
		Engine:   engine,
		Client:   client,
		Bookings: bookings,
		Sessions: sessions,
		Chats:    chats,
		Admin:    admin,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("%s bot listening on %s (variant=%s)", variant.BusinessEN, env.AppAddr, variant.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
