package http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/m-v-r/docqa/internal/service/qa"
	"github.com/m-v-r/docqa/server"
)

type chatRequest struct {
	Input            string   `json:"input"`
	SessionId        string   `json:"session_id,omitempty"`
	Temperature      *float32 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	TimeoutSeconds   *int     `json:"timeout_seconds,omitempty"`
	MaxSearchResults *int     `json:"max_search_results,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type httpServer struct {
	options server.Options
	qa      *qa.Service
	srv     *http.Server
	logger  zerolog.Logger
}

func (s *httpServer) Run() error {
	s.logger.Info().Str("address", s.options.Address).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *httpServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if len(strings.TrimSpace(req.Input)) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "input is required"})
		return
	}

	answer, err := s.qa.Chat(r.Context(), qa.ChatRequest{
		Input:            req.Input,
		SessionId:        req.SessionId,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokens,
		TimeoutSeconds:   req.TimeoutSeconds,
		MaxSearchResults: req.MaxSearchResults,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("chat request failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (s *httpServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func NewServer(qaService *qa.Service, opts ...server.Option) server.Server {
	if qaService == nil {
		panic("qa service is required")
	}

	options := server.NewOptions(opts...)

	s := &httpServer{
		options: options,
		qa:      qaService,
		logger:  zerolog.New(os.Stderr).With().Timestamp().Str("component", "http").Logger(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/v1/chat", s.handleChat).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	var handler http.Handler = router
	if ms, ok := MiddlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	s.srv = &http.Server{
		Addr:              options.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}
