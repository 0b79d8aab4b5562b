//	@title			Lanternfly Image Gallery API
//	@version		1.0
//	@description	Upload and browse spotted-lanternfly sighting photos, stored in a public S3-compatible container.
//
//	@host		localhost:8000
//	@BasePath	/api/v1

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/lanternfly/gallery/internal/config"
	"github.com/lanternfly/gallery/internal/images"
	appMiddleware "github.com/lanternfly/gallery/internal/middleware"
	"github.com/lanternfly/gallery/internal/storage"
	"github.com/lanternfly/gallery/internal/web"

	_ "github.com/lanternfly/gallery/docs/swagger"
)

func main() {
	cfg := config.Load()

	// A storage init failure is not fatal: the process keeps serving and
	// reports UNHEALTHY / storage-unavailable until it is restarted with a
	// working configuration.
	var store storage.Storage
	minioStore, err := storage.NewMinioStorage(storage.Options{
		Endpoint:   cfg.StorageEndpoint,
		AccessKey:  cfg.StorageAccessKey,
		SecretKey:  cfg.StorageSecretKey,
		Bucket:     cfg.StorageBucket,
		PublicBase: cfg.StoragePublicBase,
		UseSSL:     cfg.StorageUseSSL,
	})
	if err != nil {
		log.Printf("object storage init failed: %v", err)
	} else {
		store = minioStore
		log.Printf("object storage ready: bucket %q at %s", cfg.StorageBucket, cfg.StorageEndpoint)
	}

	imageHandler := images.NewHandler(store)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Gallery page
	r.Get("/", web.Index)

	// Swagger UI — available at http://localhost:8000/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/upload", imageHandler.Upload)
		r.Get("/gallery", imageHandler.Gallery)
		r.Get("/health", imageHandler.Health)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// The write timeout doubles as the bound on slow storage writes;
		// handlers impose no timeout of their own.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
