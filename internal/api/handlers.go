package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/grading"
	"github.com/nileshk/solance/internal/history"
	"github.com/nileshk/solance/internal/studio"
	"github.com/nileshk/solance/internal/tutor"
)

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body", err.Error())
		return false
	}
	return true
}

type generateQuestionRequest struct {
	UserID    string `json:"user_id"`
	SubjectID string `json:"subject_id"`
	Model     string `json:"model,omitempty"`
}

func (s *Server) handleGenerateQuestion(w http.ResponseWriter, r *http.Request) {
	var req generateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.SubjectID == "" {
		writeError(w, http.StatusBadRequest, "invalid request", "user_id and subject_id are required")
		return
	}

	result, err := s.questions.Generate(r.Context(), req.UserID, req.SubjectID, req.Model)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// stepsRequest wraps the tutoring round with the identity fields the
// history writer needs when the round ends in a grade.
type stepsRequest struct {
	tutor.Request
	UserID    string `json:"user_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
	Level     int    `json:"level,omitempty"`
	Concept   string `json:"concept,omitempty"`
}

func (s *Server) handleGenerateSteps(w http.ResponseWriter, r *http.Request) {
	var req stepsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := s.tutor.Step(r.Context(), req.Request)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if reply.Type == tutor.ReplyGrade && req.UserID != "" && req.SubjectID != "" {
		s.history.Enqueue(history.NewRecord(
			req.UserID, req.SubjectID, req.Question,
			reply.Grade.Marks, reply.Grade.Remarks, req.Level, req.Concept))
	}

	writeJSON(w, http.StatusOK, reply)
}

type gradeAnswerRequest struct {
	grading.Request
	UserID    string `json:"user_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
	Level     int    `json:"level,omitempty"`
	Concept   string `json:"concept,omitempty"`
}

func (s *Server) handleGradeAnswer(w http.ResponseWriter, r *http.Request) {
	var req gradeAnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.grader.Grade(r.Context(), req.Request)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	// Persistence is off the response path; a full buffer drops the
	// record rather than delaying the grade.
	if req.UserID != "" && req.SubjectID != "" {
		s.history.Enqueue(history.NewRecord(
			req.UserID, req.SubjectID, req.Question,
			result.Marks, result.Remarks, req.Level, req.Concept))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStudioGenerate(w http.ResponseWriter, r *http.Request) {
	var req studio.Request
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := s.studio.Chat(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	subjects, err := s.subjects.ListForUser(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subjectID")

	cart, err := s.subjects.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type createSubjectRequest struct {
	cartridge.Cartridge
	CreatedBy string `json:"created_by,omitempty"`
	Public    *bool  `json:"public,omitempty"`
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cart := req.Cartridge
	if req.CreatedBy != "" {
		cart.Meta.CreatedBy = req.CreatedBy
	}
	if req.Public != nil {
		cart.Meta.Public = *req.Public
	}

	id, err := s.subjects.Insert(r.Context(), cart)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"subject_id": id})
}
