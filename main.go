package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"firewater/server"
)

// Entry point: HTTP + WebSocket service hosting the two-player co-op sessions.
func main() {
	cfg := server.LoadConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address, e.g. :3000")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	flag.StringVar(&cfg.LevelFile, "level", cfg.LevelFile, "level JSON file (empty = bundled level)")
	flag.Parse()

	if err := server.InitLogger(cfg.LogFile); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	level := server.DefaultLevel()
	if cfg.LevelFile != "" {
		loaded, err := server.LoadLevel(cfg.LevelFile)
		if err != nil {
			server.Log.Fatalf("load level: %v", err)
		}
		level = loaded
	}

	mm := server.NewMatchmaker(level)

	r := chi.NewRouter()
	r.Get("/ws", server.HandleWS(mm))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", server.HandleMetrics(mm))
	r.Get("/admin/rooms", server.HandleRooms(mm))
	r.Get("/admin/config", server.HandleRoomConfig(mm))
	r.Post("/admin/config", server.HandleRoomConfig(mm))
	// Frontend assets live in web/, served as-is.
	r.Handle("/*", http.FileServer(http.Dir("web")))

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		server.Log.Infof("listening on %s, level %q", cfg.Addr, level.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// Graceful exit on Ctrl+C.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
