package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/http/response"
	"github.com/careerlens/careerlens-server/internal/service"
	"github.com/careerlens/careerlens-server/internal/table"
)

func (s *Server) registerPredictRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "predictIndividual",
		Method:      http.MethodPost,
		Path:        "/api/v1/predict/individual",
		Summary:     "Predict career cluster for one student",
		Description: "Assigns the submitted student record to a career cluster and returns the matched profile",
		Tags:        []string{"Prediction"},
	}, s.handlePredictIndividual)

	// CSV upload endpoints stay on plain chi routes; the typed surface
	// has no business streaming multipart files.
	s.router.Post("/api/v1/predict/batch", s.handlePredictBatch)
}

// IndividualRequest is one student's submission from the prediction form.
type IndividualRequest struct {
	CGPA            float64 `json:"cgpa" validate:"required,gte=0,lte=10" doc:"Cumulative GPA on a 10-point scale"`
	TechnicalSkills int     `json:"technical_skills,omitempty" validate:"gte=0,lte=5" doc:"Self-rated technical skills, 0-5"`
	SoftSkills      int     `json:"soft_skills,omitempty" validate:"gte=0,lte=5" doc:"Self-rated soft skills, 0-5"`
	Internships     int     `json:"internships,omitempty" validate:"gte=0" doc:"Number of internships completed"`
	Projects        int     `json:"projects,omitempty" validate:"gte=0" doc:"Number of projects completed"`
	Hackathons      int     `json:"hackathons,omitempty" validate:"gte=0" doc:"Number of hackathons attended"`
	Certifications  int     `json:"certifications,omitempty" validate:"gte=0" doc:"Number of certification courses"`
	ResearchPapers  int     `json:"research_papers,omitempty" validate:"gte=0" doc:"Number of research papers published"`
	Cocurricular    bool    `json:"cocurricular,omitempty" doc:"Active in co-curricular activities"`
	ECell           bool    `json:"e_cell,omitempty" doc:"Member of the entrepreneurship cell"`
	FamilyBusiness  bool    `json:"family_business,omitempty" doc:"Family runs a business"`
	Leadership      bool    `json:"leadership,omitempty" doc:"Has held a leadership role"`
	Gender          string  `json:"gender,omitempty" doc:"Gender"`
	Branch          string  `json:"branch,omitempty" doc:"Engineering branch"`
	InternshipType  string  `json:"internship_type,omitempty" doc:"Most recent internship type"`
}

// IndividualInput wraps the request body for Huma.
type IndividualInput struct {
	Body IndividualRequest
}

// IndividualResponse is the individual prediction payload.
type IndividualResponse struct {
	Prediction domain.Prediction       `json:"prediction"`
	Scores     domain.EngineeredScores `json:"scores"`
	Embedding  string                  `json:"embedding" doc:"Embedding strategy used: pca, latent, or passthrough"`
}

// IndividualOutput wraps the response for Huma.
type IndividualOutput struct {
	Body IndividualResponse
}

func (s *Server) handlePredictIndividual(ctx context.Context, input *IndividualInput) (*IndividualOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	res, err := s.services.Prediction.PredictIndividual(ctx, service.IndividualRecord{
		CGPA:            input.Body.CGPA,
		TechnicalSkills: input.Body.TechnicalSkills,
		SoftSkills:      input.Body.SoftSkills,
		Internships:     input.Body.Internships,
		Projects:        input.Body.Projects,
		Hackathons:      input.Body.Hackathons,
		Certifications:  input.Body.Certifications,
		ResearchPapers:  input.Body.ResearchPapers,
		Cocurricular:    input.Body.Cocurricular,
		ECell:           input.Body.ECell,
		FamilyBusiness:  input.Body.FamilyBusiness,
		Leadership:      input.Body.Leadership,
		Gender:          input.Body.Gender,
		Branch:          input.Body.Branch,
		InternshipType:  input.Body.InternshipType,
	})
	if err != nil {
		return nil, err
	}

	return &IndividualOutput{
		Body: IndividualResponse{
			Prediction: res.Prediction,
			Scores:     res.Scores,
			Embedding:  res.Embedding,
		},
	}, nil
}

// BatchResponse is the JSON payload for a batch prediction run.
type BatchResponse struct {
	Summary domain.BatchSummary `json:"summary"`
	Headers []string            `json:"headers"`
	Rows    [][]string          `json:"rows"`
}

func (s *Server) handlePredictBatch(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.readUpload(w, r, "file")
	if !ok {
		return
	}

	res, err := s.services.Prediction.PredictBatch(r.Context(), tbl)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		s.writeCSV(w, res.Table, "predictions.csv")
		return
	}

	rows := make([][]string, res.Table.NumRows())
	for i := range rows {
		rows[i] = res.Table.Row(i)
	}
	response.Success(w, BatchResponse{
		Summary: res.Summary,
		Headers: res.Table.Headers(),
		Rows:    rows,
	}, s.logger.Logger)
}

// readUpload parses one CSV file field from a multipart upload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (*table.Table, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		response.BadRequest(w, fmt.Sprintf("failed to parse upload: %v", err), s.logger.Logger)
		return nil, false
	}
	return s.formCSV(w, r, field)
}

// formCSV reads one CSV file field from an already parsed multipart form.
func (s *Server) formCSV(w http.ResponseWriter, r *http.Request, field string) (*table.Table, bool) {
	file, _, err := r.FormFile(field)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("missing file field %q", field), s.logger.Logger)
		return nil, false
	}
	defer file.Close()

	tbl, err := table.ReadCSV(file)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("invalid csv in %q: %v", field, err), s.logger.Logger)
		return nil, false
	}
	return tbl, true
}

func (s *Server) writeCSV(w http.ResponseWriter, tbl *table.Table, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := tbl.WriteCSV(w); err != nil {
		s.logger.Error("Failed to stream csv response", "error", err)
	}
}
