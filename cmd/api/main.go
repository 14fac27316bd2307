package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idcard/internal/cards"
	"idcard/internal/config"
	"idcard/internal/httpmiddleware"
	"idcard/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	st, err := store.NewMongo(store.MongoOptions{
		URI:           cfg.DatabaseURL,
		Database:      cfg.MongoDB,
		MaxPool:       cfg.MongoMaxPool,
		SelectTimeout: cfg.MongoSelectTimeout,
		SocketTimeout: cfg.MongoSocketTimeout,
	})
	if err != nil {
		return err
	}

	repo := cards.NewRepository(st.Database())

	// The server comes up immediately; the gate answers 503 until the store
	// finishes its handshake and again during outages. The admin index
	// bootstrap runs on every transition to ready.
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go st.Monitor(monitorCtx, func(ctx context.Context) {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Printf("admin id index bootstrap: %v (continuing)", err)
		}
	})

	var rds *store.Redis
	var cache *store.Cache
	if cfg.RedisAddr != "" {
		rds = store.NewRedis(cfg.RedisAddr)
		cache = store.NewCache(rds, cfg.CacheTTL)
		log.Println("list cache enabled:", cfg.RedisAddr)
	}
	defer func() {
		_ = rds.Close()
	}()

	svc := cards.NewService(repo)
	h := cards.New(svc, st, cache, rds)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: httpmiddleware.LogFormatter,
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.CORS(cfg.CORSOrigins))
	r.Use(httpmiddleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api", httpmiddleware.RequireDB(st))
	api.GET("/printed", h.ListPrinted)
	api.GET("/acchistoryids", h.ListHistory)
	api.GET("/accepted-idcards", h.ListAccepted)
	api.POST("/accept-idcard", h.AcceptIDCard)
	api.POST("/login", h.Login)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stopMonitor()

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Printf("Store close: %v", err)
	}

	log.Println("Server exited")
	return nil
}
