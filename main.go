package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "travelagency/internal/config"
	router "travelagency/internal/http"
	"travelagency/internal/http/handlers"
	"travelagency/internal/media"
	"travelagency/internal/services"
	"travelagency/internal/upstream"
	"travelagency/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.ConfigureLogger(env.LogLevel, env.LogFormat)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer intconfig.CloseDB()

	if env.BackendURL == "" {
		log.Warn("BACKEND_URL kosong, rute booking akan gagal")
	}
	if env.AuthJWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET kosong, rute admin akan menolak semua token")
	}

	handler := &handlers.Handler{
		Upstream: upstream.New(env.BackendURL, env.UpstreamTimeout, env.UpstreamRetries, env.UpstreamRetryDelay),
		Media: &media.Client{
			BaseURL:       env.MediaAPIURL,
			APIKey:        env.MediaAPIKey,
			APISecret:     env.MediaAPISecret,
			DefaultFolder: env.GalleryFolder,
			HTTP:          &http.Client{Timeout: env.UpstreamTimeout},
			Retries:       env.UpstreamRetries,
			RetryDelay:    env.UpstreamRetryDelay,
		},
		Trips: services.NewTripService(db),
		Users: services.NewUserService(db),
	}

	deps := router.NewDeps(env, handler)
	stop := make(chan struct{})
	go deps.Limiter.Run(stop)

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.UpstreamTimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}
