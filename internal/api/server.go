// Package api exposes the HTTP surface: adaptive question generation,
// tutoring, grading, studio authoring and the subject catalog.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/grading"
	"github.com/nileshk/solance/internal/history"
	"github.com/nileshk/solance/internal/questiongen"
	"github.com/nileshk/solance/internal/studio"
	"github.com/nileshk/solance/internal/tutor"
)

// Options wires the server's collaborators.
type Options struct {
	APIKey      string
	CORSOrigins []string

	Questions *questiongen.Service
	Tutor     *tutor.Service
	Grader    *grading.Service
	Studio    *studio.Service
	Subjects  *cartridge.Store
	History   *history.Writer

	Logger *zap.Logger
}

type Server struct {
	router    chi.Router
	questions *questiongen.Service
	tutor     *tutor.Service
	grader    *grading.Service
	studio    *studio.Service
	subjects  *cartridge.Store
	history   *history.Writer
	logger    *zap.Logger
}

func NewServer(opts Options) *Server {
	s := &Server{
		questions: opts.Questions,
		tutor:     opts.Tutor,
		grader:    opts.Grader,
		studio:    opts.Studio,
		subjects:  opts.Subjects,
		history:   opts.History,
		logger:    opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", apiKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAPIKey(opts.APIKey))

		r.Post("/generate-question", s.handleGenerateQuestion)
		r.Post("/generate-steps", s.handleGenerateSteps)
		r.Post("/grade-answer", s.handleGradeAnswer)
		r.Post("/studio/generate", s.handleStudioGenerate)

		r.Get("/subjects", s.handleListSubjects)
		r.Get("/subjects/{subjectID}", s.handleGetSubject)
		r.Post("/subjects", s.handleCreateSubject)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": "solance", "status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
