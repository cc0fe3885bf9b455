// Package httpapi exposes the quiz catalog, the quiz-finish workflow, the
// PDF library and the arcade over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/library"
	"github.com/vovakirdan/quiz-arcade/internal/live"
	"github.com/vovakirdan/quiz-arcade/internal/quiz"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

// Store is the persistence the API reads from.
type Store interface {
	quiz.Store
	Ping(ctx context.Context) error
	ListCategories(ctx context.Context) ([]storage.Category, error)
	Quiz(ctx context.Context, id string) (storage.Quiz, error)
	CategoryStats(ctx context.Context, userID string) ([]storage.CategoryStat, error)
	RecentAttempts(ctx context.Context, userID string, limit int) ([]storage.Attempt, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Deps wires the server.
type Deps struct {
	Store   Store
	Quiz    *quiz.Service
	Library *library.Library
	Live    *live.Handler
	Auth    auth.Authenticator
	Log     *log.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	store Store
	quiz  *quiz.Service
	lib   *library.Library
	live  *live.Handler
	auth  auth.Authenticator
	log   *log.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds a server. Library and Live may be nil, which disables their
// routes.
func New(d Deps) *Server {
	a := d.Auth
	if a == nil {
		a = auth.AuthenticatorFunc(func(*http.Request) (string, bool) { return "", false })
	}
	logger := d.Log
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store: d.Store,
		quiz:  d.Quiz,
		lib:   d.Library,
		live:  d.Live,
		auth:  a,
		log:   logger.With("component", "http"),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Handler returns the routed handler with identity and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return requestLogger(s.log, auth.Middleware(s.auth, mux))
}

// Register adds every route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/user/quiz/finish", s.handleFinish)
	mux.HandleFunc("POST /api/quiz/attempt", s.handleFinish)
	mux.HandleFunc("POST /api/user/register", s.handleRegister)
	mux.HandleFunc("GET /api/user/stats", s.handleUserStats)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/quizzes/{id}/play", s.handlePlayQuiz)

	mux.HandleFunc("GET /api/library", s.handleLibrary)
	mux.HandleFunc("GET /library/{path...}", s.handleLibraryFile)

	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/games/{id}/scores", s.handleScores)
	mux.HandleFunc("GET /api/games/{id}/play", s.handleLiveGame)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// internalError logs err and answers with a generic message.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Error("health check", "err", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Quiz finish ----

// maxFinishBody caps a quiz submission; larger bodies are rejected as invalid.
const maxFinishBody = 1 << 20

type finishResp struct {
	Success    bool                 `json:"success"`
	Stats      storage.CategoryStat `json:"stats"`
	QuizID     string               `json:"quizId"`
	CategoryID string               `json:"categoryId"`
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := quiz.DecodeSubmission(http.MaxBytesReader(w, r.Body, maxFinishBody))
	if err == nil {
		err = sub.Validate()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	st, err := s.quiz.FinishQuiz(r.Context(), user, sub)
	switch {
	case errors.Is(err, quiz.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, "Invalid request data")
	case err != nil:
		s.internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, finishResp{
			Success:    true,
			Stats:      st,
			QuizID:     sub.QuizID,
			CategoryID: sub.CategoryID,
		})
	}
}

// ---- Users ----

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ext, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := s.store.UpsertUser(r.Context(), ext)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

type statsResp struct {
	Stats    []storage.CategoryStat `json:"stats"`
	Attempts []storage.Attempt      `json:"attempts"`
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	ext, ok := auth.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := s.store.UpsertUser(r.Context(), ext)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	stats, err := s.store.CategoryStats(r.Context(), u.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	attempts, err := s.store.RecentAttempts(r.Context(), u.ID, 20)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResp{Stats: stats, Attempts: attempts})
}

// ---- Catalog ----

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handlePlayQuiz(w http.ResponseWriter, r *http.Request) {
	setup := quiz.Setup{Difficulty: r.URL.Query().Get("difficulty")}
	if c := r.URL.Query().Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		setup.Count = n
	}

	q, err := s.store.Quiz(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.rngMu.Lock()
	prepared := quiz.Prepare(q, setup, s.rng)
	s.rngMu.Unlock()
	writeJSON(w, http.StatusOK, prepared)
}

// ---- Library ----

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	if s.lib == nil {
		writeJSON(w, http.StatusOK, library.Manifest{Categories: []library.Category{}})
		return
	}
	writeJSON(w, http.StatusOK, s.lib.Manifest())
}

func (s *Server) handleLibraryFile(w http.ResponseWriter, r *http.Request) {
	if s.lib == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	p, err := s.lib.Resolve(r.PathValue("path"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, p)
}

// ---- Arcade ----

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := registry.Lookup(id); !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	scores, err := s.store.TopScores(r.Context(), id, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleLiveGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := registry.Lookup(id); !ok || s.live == nil {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	s.live.Serve(w, r, id)
}
