package api

import (
	"net/http"

	"github.com/careerlens/careerlens-server/internal/http/response"
)

func (s *Server) registerCompareRoutes() {
	s.router.Post("/api/v1/predict/batch-compare", s.handleBatchCompare)
}

// handleBatchCompare evaluates a predicted-labels CSV against a ground
// truth CSV and returns the accuracy report.
func (s *Server) handleBatchCompare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		response.BadRequest(w, "failed to parse upload", s.logger.Logger)
		return
	}

	pred, ok := s.formCSV(w, r, "predicted")
	if !ok {
		return
	}
	truth, ok := s.formCSV(w, r, "truth")
	if !ok {
		return
	}

	report, err := s.services.Comparison.Compare(r.Context(), pred, truth)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, report, s.logger.Logger)
}
