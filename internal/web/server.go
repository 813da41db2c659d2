// Package web serves a directory of OBJ models over HTTP as JSON and glTF.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/math"
)

// Server browses the OBJ files of one directory.
type Server struct {
	dir   string
	color math.Vec3
	log   *zap.Logger
}

// NewServer creates a server for the models in dir. color is the vertex
// color baked into buffers and the fallback glTF material.
func NewServer(dir string, color math.Vec3) *Server {
	return &Server{
		dir:   dir,
		color: color,
		log:   logger.Named("web"),
	}
}

// Router returns the bare route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/models", s.handleModels).Methods(http.MethodGet)
	r.HandleFunc("/json/models/{name}", s.handleModel).Methods(http.MethodGet)
	r.HandleFunc("/json/models/{name}/buffers", s.handleBuffers).Methods(http.MethodGet)
	r.HandleFunc("/gltf/models/{name}", s.handleGLTF).Methods(http.MethodGet)
	return r
}

// Handler returns the routes wrapped with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	accessLog := zap.NewStdLog(s.log).Writer()
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.Router())
	return handlers.LoggingHandler(accessLog, h)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", addr), zap.String("dir", s.dir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
