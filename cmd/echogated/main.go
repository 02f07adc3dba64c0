package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/api"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/config"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/events"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/pipeline"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/wsgateway"
)

func main() {
	// Load .env file if present (ignored if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	ev := events.NewStore()
	mgr := pipeline.New(cfg.EchoFilter(), ev)

	h := api.NewHandlers(cfg, mgr, ev)
	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(h))
	mux.Handle("/metrics", promhttp.Handler())

	// Pipeline websocket route
	reg := wsgateway.NewRegistry()
	gw := wsgateway.NewServer(cfg, mgr, ev, reg)
	mux.HandleFunc("/ws/pipeline", gw.HandlePipelineWS)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Printf("shutdown signal received; stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("echogated starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Println("server error:", err)
		os.Exit(1)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
