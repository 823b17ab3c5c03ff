package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mindwell/internal/logger"
	"mindwell/internal/model"
	"mindwell/internal/service"
	"mindwell/internal/transport/rest/middleware"
)

const generationFailureMessage = "could not analyze your assessment, please try again"

// AssessmentAPI is the part of the assessment service the handlers use
type AssessmentAPI interface {
	Questionnaire() []model.QuestionDefinition
	Submit(ctx context.Context, studentID string, answers model.AnswerSet) (*model.AssessmentResult, error)
	Get(ctx context.Context, viewerID string, viewerRole model.Role, id string) (*model.Assessment, error)
	List(ctx context.Context, studentID string) ([]*model.Assessment, error)
	SaveDraftAnswer(ctx context.Context, studentID, questionID string, value model.AnswerValue) error
	GetDraft(ctx context.Context, studentID string) (model.AnswerSet, error)
	DiscardDraft(ctx context.Context, studentID string) error
}

// AssessmentHandler handles questionnaire, submission and draft endpoints
type AssessmentHandler struct {
	svc AssessmentAPI
	log *logger.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(svc AssessmentAPI, log *logger.Logger) *AssessmentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentHandler{svc: svc, log: log}
}

// SubmitRequest carries the completed questionnaire
type SubmitRequest struct {
	Answers model.AnswerSet `json:"answers"`
}

// DraftAnswerRequest carries one in-progress answer
type DraftAnswerRequest struct {
	Value model.AnswerValue `json:"value"`
}

type generationFailureResponse struct {
	Error     string          `json:"error"`
	Retryable bool            `json:"retryable"`
	Answers   model.AnswerSet `json:"answers"`
}

// Questionnaire handles GET /v1/questionnaire
//
//	@Summary	The fixed wellness questionnaire
//	@Tags		assessments
//	@Success	200	{array}	model.QuestionDefinition
//	@Router		/v1/questionnaire [get]
func (h *AssessmentHandler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Questionnaire())
}

// Submit handles POST /v1/assessments
//
//	@Summary	Submit a completed questionnaire for scoring and analysis
//	@Tags		assessments
//	@Param		body	body		SubmitRequest	true	"answers keyed by question id"
//	@Success	201		{object}	model.AssessmentResult
//	@Failure	422		{object}	validationResponse
//	@Failure	502		{object}	generationFailureResponse
//	@Router		/v1/assessments [post]
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = model.AnswerSet{}
	}

	studentID := middleware.GetUserID(r.Context())
	result, err := h.svc.Submit(r.Context(), studentID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrGeneration) {
			writeJSON(w, http.StatusBadGateway, generationFailureResponse{
				Error:     generationFailureMessage,
				Retryable: true,
				Answers:   req.Answers,
			})
			return
		}
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			h.log.Error("assessment submission failed", "student_id", studentID, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// List handles GET /v1/assessments
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.log.Error("listing assessments failed", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := h.svc.Get(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetDraft handles GET /v1/assessments/draft
func (h *AssessmentHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.svc.GetDraft(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.log.Error("loading draft failed", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": draft})
}

// SaveDraft handles PUT /v1/assessments/draft/{questionId}
func (h *AssessmentHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.SaveDraftAnswer(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["questionId"], req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DiscardDraft handles DELETE /v1/assessments/draft
func (h *AssessmentHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DiscardDraft(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
