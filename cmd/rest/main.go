package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blog-publishing-be/internal/bootstrap"
	"blog-publishing-be/internal/config"
	"blog-publishing-be/internal/server"
	"blog-publishing-be/internal/tracer"
	"blog-publishing-be/pkg/database"
	pktNats "blog-publishing-be/pkg/nats"

	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	log.Println("Background: Starting Summary Consumer...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// Every instance keeps its own render cache when Redis is off, so each one
	// needs every change event.
	if container.EventSubscriber != nil {
		durable := "render-cache-" + uuid.NewString()[:8]
		err := container.EventSubscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", durable, container.PublicPostService.HandleEvent)
		if err != nil {
			log.Printf("[WARN] Render cache invalidation disabled: %v", err)
		}
		defer container.EventSubscriber.Close()
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
