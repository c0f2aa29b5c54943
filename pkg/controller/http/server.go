package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/errutil"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/assessments", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleAdd)
		r.Get("/matrix", s.handleMatrix)
		r.Get("/search", s.handleSearch)
		r.Get("/export", s.handleExport)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type collectionResponse struct {
	Assessments []*model.Assessment `json:"assessments"`
	Advisory    string              `json:"advisory,omitempty"`
}

// handleList reloads from the remote store (cache-backed, never failing)
// and returns the collection with any advisory condition.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	assessments := s.uc.Assessment.Load(r.Context())
	advisory, _ := s.uc.Assessment.Advisory()

	writeJSON(w, r, http.StatusOK, collectionResponse{
		Assessments: assessments,
		Advisory:    advisory,
	})
}

type assessmentRequest struct {
	Name          string `json:"name"`
	Asset         string `json:"asset"`
	Description   string `json:"description"`
	Threat        string `json:"threat"`
	Vulnerability string `json:"vulnerability"`
	Method        string `json:"method"`

	Probability           int     `json:"probability"`
	Impact                int     `json:"impact"`
	VulnerabilitySeverity float64 `json:"vulnerabilitySeverity"`
	ControlEffectiveness  float64 `json:"controlEffectiveness"`
	DetectionCapability   int     `json:"detectionCapability"`
	ResponseCapability    int     `json:"responseCapability"`
	ConfidentialityImpact int     `json:"confidentialityImpact"`
	IntegrityImpact       int     `json:"integrityImpact"`
	AvailabilityImpact    int     `json:"availabilityImpact"`

	ExistingControls string `json:"existingControls"`
	ProposedControls string `json:"proposedControls"`
}

func (req *assessmentRequest) toDraft() (*model.Draft, error) {
	method := types.Method(req.Method)
	if err := method.Validate(); err != nil {
		return nil, err
	}

	var input model.Input
	switch method {
	case types.MethodQualitative:
		input = model.Qualitative{
			Probability: req.Probability,
			Impact:      req.Impact,
		}
	case types.MethodQuantitative:
		input = model.Quantitative{
			Probability:           req.Probability,
			Impact:                req.Impact,
			VulnerabilitySeverity: req.VulnerabilitySeverity,
			ControlEffectiveness:  req.ControlEffectiveness,
			DetectionCapability:   req.DetectionCapability,
			ResponseCapability:    req.ResponseCapability,
			ConfidentialityImpact: req.ConfidentialityImpact,
			IntegrityImpact:       req.IntegrityImpact,
			AvailabilityImpact:    req.AvailabilityImpact,
		}
	}

	draft := &model.Draft{
		Name:             req.Name,
		Asset:            req.Asset,
		Description:      req.Description,
		Threat:           req.Threat,
		Vulnerability:    req.Vulnerability,
		Input:            input,
		ExistingControls: req.ExistingControls,
		ProposedControls: req.ProposedControls,
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// handleAdd validates the submitted form and persists the scored record.
// Range enforcement happens here, at the form boundary, not in the engine.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode assessment request"), http.StatusBadRequest)
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	record := s.uc.Assessment.Add(r.Context(), draft)

	type addResponse struct {
		Assessment *model.Assessment `json:"assessment"`
		Advisory   string            `json:"advisory,omitempty"`
	}
	advisory, _ := s.uc.Assessment.Advisory()
	writeJSON(w, r, http.StatusCreated, addResponse{Assessment: record, Advisory: advisory})
}

type matrixCell struct {
	Probability int             `json:"probability"`
	Impact      int             `json:"impact"`
	Score       int             `json:"score"`
	Level       types.RiskLevel `json:"level"`
	Names       []string        `json:"names"`
}

// handleMatrix renders the 5x5 probability/impact matrix from the
// in-memory collection. Ratings above 5 land in the edge cells so the view
// stays bounded.
func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	var cells []matrixCell
	for impact := 5; impact >= 1; impact-- {
		for probability := 1; probability <= 5; probability++ {
			cells = append(cells, matrixCell{
				Probability: probability,
				Impact:      impact,
				Score:       probability * impact,
				Level:       types.LevelOf(float64(probability * impact)),
				Names:       []string{},
			})
		}
	}

	cellIndex := func(probability, impact int) int {
		return (5-impact)*5 + (probability - 1)
	}
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		if v > 5 {
			return 5
		}
		return v
	}

	for _, a := range s.uc.Assessment.Assessments() {
		i := cellIndex(clamp(a.Probability), clamp(a.Impact))
		cells[i].Names = append(cells[i].Names, a.Name)
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"cells": cells})
}

// handleSearch filters by scoring method, querying the remote store when
// available and falling back to the local collection.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	method := types.Method(r.URL.Query().Get("method"))
	if err := method.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	matched := s.uc.Assessment.SearchByMethod(r.Context(), method)
	writeJSON(w, r, http.StatusOK, collectionResponse{Assessments: matched})
}

// handleExport streams the collection as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := usecase.WriteCSV(&buf, s.uc.Assessment.Assessments()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="risk-assessments.csv"`)
	w.WriteHeader(http.StatusOK)
	safe.Copy(r.Context(), w, &buf)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
