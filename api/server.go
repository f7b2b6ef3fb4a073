package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"text-recitation/config"
	"text-recitation/ocr"
	"text-recitation/speech"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Server struct {
	Cfg    config.Config
	Db     *gorm.DB
	Router httprouter.Router
	Speech *speech.Engine
	OCR    ocr.Recognizer
}

func New(cfg config.Config, db *gorm.DB, engine *speech.Engine, recognizer ocr.Recognizer) *Server {
	server := &Server{Cfg: cfg, Db: db, Speech: engine, OCR: recognizer}
	server.Router = *server.Routes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, p, _ := s.Router.Lookup(r.Method, r.URL.Path)
	if h != nil {
		h(w, r, p)
		return
	}
	s.Response(w, r, ErrorResponse{Error: "path not found"}, http.StatusNotFound)
}

// ErrorResponse is the wire shape of every error: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs the failure with its context and returns the response body for
// the client. Function and input stay in the log, not on the wire.
func (s *Server) Error(code int, message string, function string, input interface{}) ErrorResponse {
	log.Error().
		Int("code", code).
		Str("function", function).
		Interface("input", input).
		Msg(message)
	return ErrorResponse{Error: message}
}

func (s *Server) Decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) Response(w http.ResponseWriter, r *http.Request, i interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if i != nil {
		err := json.NewEncoder(w).Encode(i)
		if err != nil {
			w.Write([]byte(`{"error": "couldn't encode response data"}`))
		}
	}
}

func (s *Server) AwaitForShutdown(ctx context.Context, server *http.Server, serverDone chan error, shutdownApplication context.CancelFunc) {
	select {
	case <-ctx.Done():
		s.ShutdownServerGracefully(server)
	case serverError := <-serverDone:
		if serverError != nil {
			log.Error().Err(serverError).Msg("Server returned with error")
		}
		shutdownApplication()
	}
}

func (s *Server) ShutdownServerGracefully(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Could not shutdown server gracefully")
	}
}

func (s *Server) HandleShutdownSignals(cancel context.CancelFunc) {
	done := make(chan struct{})
	go func() {
		log.Info().Msg("Listening signals...")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		close(done)
	}()
	go func() {
		<-done
		log.Info().Msg("Shutting down")
		cancel()
	}()
}
