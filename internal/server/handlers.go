package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/types"
)

// ExtractRequest is the body for POST /extract.
type ExtractRequest struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
}

// BatchExtractRequest is the body for POST /extract/batch.
type BatchExtractRequest struct {
	Jobs []extraction.BatchItem `json:"jobs"`
}

// BatchExtractUnit is one posting's outcome in a batch response.
type BatchExtractUnit struct {
	Index int                   `json:"index"`
	Job   *types.JobDescription `json:"job,omitempty"`
	Error string                `json:"error,omitempty"`
}

// BatchExtractResponse reports per-unit outcomes for a batch.
type BatchExtractResponse struct {
	Results   []BatchExtractUnit `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// IngestURLRequest is the body for POST /ingest/url.
type IngestURLRequest struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// TailorRequest is the body for POST /tailor.
type TailorRequest struct {
	Profile types.UserProfile    `json:"profile"`
	Job     types.JobDescription `json:"job"`
	// Optimize runs one improvement pass when the first tailoring lands
	// below the server's target score.
	Optimize bool `json:"optimize,omitempty"`
}

// OptimizeRequest is the body for POST /optimize.
type OptimizeRequest struct {
	CV          types.TailoredCV     `json:"cv"`
	Job         types.JobDescription `json:"job"`
	TargetScore int                  `json:"targetScore,omitempty"`
}

// MultiRenderRequest is the body for POST /render/multi.
type MultiRenderRequest struct {
	types.RenderRequest
	Templates []string `json:"templates"`
}

// MultiRenderUnit is one template's outcome in a multi-render response.
type MultiRenderUnit struct {
	Template string              `json:"template"`
	Result   *types.RenderResult `json:"result,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// handleExtract extracts keywords for one posting.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	job, err := ingestion.FromText(req.Title, req.Company, req.Description)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.extractor.ExtractInto(r.Context(), job)
	s.jsonResponse(w, http.StatusOK, job)
}

// handleExtractBatch extracts keywords for several postings; one posting's
// failure never hides its siblings' results.
func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Jobs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "jobs is required")
		return
	}

	results := s.extractor.ExtractBatch(r.Context(), req.Jobs)

	resp := BatchExtractResponse{Results: make([]BatchExtractUnit, len(results))}
	for i, result := range results {
		unit := BatchExtractUnit{Index: result.Index, Job: result.Job}
		if result.Err != nil {
			unit.Error = result.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results[i] = unit
	}

	status := http.StatusOK
	if resp.Failed > 0 && resp.Succeeded > 0 {
		status = http.StatusMultiStatus
	} else if resp.Succeeded == 0 {
		status = http.StatusBadRequest
	}
	s.jsonResponse(w, status, resp)
}

// handleIngestURL fetches a posting page and extracts its keywords.
func (s *Server) handleIngestURL(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		s.errorResponse(w, http.StatusNotImplemented, "URL ingestion is not enabled")
		return
	}

	var req IngestURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	job, err := ingestion.FromURL(r.Context(), s.fetcher, req.URL, req.Title, req.Company)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.extractor.ExtractInto(r.Context(), job)
	s.jsonResponse(w, http.StatusOK, job)
}

// handleTailor produces a tailored CV for a (profile, job) pair. The job's
// keywords are extracted first if the caller did not supply them.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile.Personal.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "profile.personal.name is required")
		return
	}
	if req.Job.Description == "" {
		s.errorResponse(w, http.StatusBadRequest, "job.description is required")
		return
	}

	s.extractor.ExtractInto(r.Context(), &req.Job)

	cv, err := s.tailor.TailorCV(r.Context(), &req.Profile, &req.Job)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if req.Optimize {
		cv = s.tailor.Optimize(r.Context(), cv, &req.Job, s.targetScore).CV
	}

	s.jsonResponse(w, http.StatusOK, cv)
}

// handleOptimize runs one improvement pass over an existing tailored CV.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Job.Keywords) == 0 {
		s.extractor.ExtractInto(r.Context(), &req.Job)
	}

	target := req.TargetScore
	if target <= 0 {
		target = s.targetScore
	}

	result := s.tailor.Optimize(r.Context(), &req.CV, &req.Job, target)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRender runs one render job and reports the artifact metadata. The
// PDF itself is retrieved from /artifacts/{id}.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.renderer.Render(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

// handleRenderMulti renders the same CV with several templates, reporting
// per-template outcomes.
func (s *Server) handleRenderMulti(w http.ResponseWriter, r *http.Request) {
	var req MultiRenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Templates) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "templates is required")
		return
	}

	results := s.renderer.RenderAll(r.Context(), &req.RenderRequest, req.Templates)

	units := make([]MultiRenderUnit, len(results))
	anySucceeded := false
	for i, result := range results {
		unit := MultiRenderUnit{Template: result.Template, Result: result.Result}
		if result.Err != nil {
			unit.Error = result.Err.Error()
		} else {
			anySucceeded = true
		}
		units[i] = unit
	}

	status := http.StatusCreated
	if !anySucceeded {
		status = http.StatusBadGateway
	}
	s.jsonResponse(w, status, map[string]any{"results": units})
}

// handleTemplates returns the template catalog.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Catalog())
}

// handleArtifact streams a rendered PDF by its job id.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid artifact id")
		return
	}

	matches, err := filepath.Glob(filepath.Join(s.artifactDir, "cv-*-"+id+".pdf"))
	if err != nil || len(matches) == 0 {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("artifact not found: %s", id))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(matches[0])))
	http.ServeFile(w, r, matches[0])
}
