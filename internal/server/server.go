package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server with graceful shutdown handling.
type Server struct {
	router *gin.Engine
	addr   string

	// onShutdown hooks run after the listener has drained, in order.
	onShutdown []func()
}

// New creates a new Server instance
func New(router *gin.Engine, host, port string) *Server {
	return &Server{
		router: router,
		addr:   host + ":" + port,
	}
}

// OnShutdown registers a hook to run after the HTTP listener drains.
func (s *Server) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	go func() {
		log.Printf("[Server] Listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[Server] Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	for _, fn := range s.onShutdown {
		fn()
	}
	return nil
}
