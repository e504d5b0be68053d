package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/grading"
	"github.com/nileshk/solance/internal/llm"
	"github.com/nileshk/solance/internal/studio"
	"github.com/nileshk/solance/internal/tutor"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorBody{Error: msg, Detail: detail})
}

// writeServiceError translates domain and gateway errors into HTTP
// statuses. Upstream credential failures surface as 500 because they
// are a deployment problem, not something the caller can fix.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		authErr    *llm.ErrAuth
		rateErr    *llm.ErrRateLimit
		downErr    *llm.ErrProviderUnavailable
		invalidErr *llm.ErrInvalidResponse
		tokensErr  *llm.ErrMaxTokensExceeded

		cartVal   *cartridge.ValidationError
		tutorVal  *tutor.ValidationError
		gradeVal  *grading.ValidationError
		studioVal *studio.ValidationError
	)

	switch {
	case errors.As(err, &cartVal), errors.As(err, &tutorVal),
		errors.As(err, &gradeVal), errors.As(err, &studioVal):
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return

	case errors.Is(err, cartridge.ErrNotFound):
		writeError(w, http.StatusNotFound, "subject not found", "")
		return

	case errors.As(err, &authErr):
		s.logger.Error("llm credentials rejected", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generation backend misconfigured", "")
		return

	case errors.As(err, &rateErr), errors.As(err, &downErr):
		s.logger.Warn("llm backend unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "generation backend unavailable", "try again shortly")
		return

	case errors.As(err, &invalidErr), errors.As(err, &tokensErr):
		s.logger.Warn("llm returned malformed output", zap.Error(err))
		writeError(w, http.StatusBadGateway, "generation backend returned malformed output", "")
		return
	}

	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error", "")
}
