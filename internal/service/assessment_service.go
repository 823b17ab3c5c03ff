package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindwell/internal/cache"
	"mindwell/internal/logger"
	"mindwell/internal/model"
	"mindwell/internal/repository"
	"mindwell/internal/scoring"
)

const historyLimit = 50

// AssessmentService runs the submission pipeline and serves results and drafts
type AssessmentService struct {
	repo        repository.AssessmentRepo
	drafts      cache.DraftCache
	reports     cache.ReportCache
	analyzer    *Analyzer
	broadcaster Broadcaster
	questions   []model.QuestionDefinition
	log         *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	repo repository.AssessmentRepo,
	drafts cache.DraftCache,
	reports cache.ReportCache,
	analyzer *Analyzer,
	log *logger.Logger,
) *AssessmentService {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentService{
		repo:      repo,
		drafts:    drafts,
		reports:   reports,
		analyzer:  analyzer,
		questions: scoring.Questionnaire(),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// SetBroadcaster sets the broadcaster for staff alerts
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Questionnaire returns the question definitions in display order
func (s *AssessmentService) Questionnaire() []model.QuestionDefinition {
	return s.questions
}

// Submit validates, scores and analyzes the answers, then stores exactly one
// record. A generation failure stores nothing and keeps the answers as a draft.
func (s *AssessmentService) Submit(ctx context.Context, studentID string, answers model.AnswerSet) (*model.AssessmentResult, error) {
	answers = answers.Typed(s.questions)
	log := s.log.With("student_id", studentID)

	if unknown := scoring.UnknownIDs(answers, s.questions); len(unknown) > 0 {
		log.Warn("ignoring unknown question ids", "ids", unknown)
	}
	if err := scoring.Validate(answers, s.questions); err != nil {
		return nil, err
	}

	scores := scoring.ComputeScores(answers, s.questions)
	risk := scoring.ClassifyRisk(scores)
	if scores.WellbeingRaw != scores.OverallWellbeing {
		log.Debug("wellbeing clamped", "raw", scores.WellbeingRaw, "clamped", scores.OverallWellbeing)
	}

	result, err := s.analyzer.Analyze(ctx, answers, scores, risk)
	if err != nil {
		s.keepDraft(ctx, studentID, answers)
		return nil, err
	}

	record := model.NewAssessment(s.newID(), studentID, answers, scores, risk, result, s.now())
	if err := s.repo.Create(ctx, record); err != nil {
		s.keepDraft(ctx, studentID, answers)
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	log.Info("assessment stored", "assessment_id", record.ID, "risk_level", risk)

	if err := s.drafts.Delete(ctx, studentID); err != nil {
		log.Warn("failed to clear draft", "error", err)
	}
	if err := s.reports.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate report cache", "error", err)
	}
	if risk.Elevated() && s.broadcaster != nil {
		s.broadcaster.BroadcastToStaff(MsgRiskAlert, model.RiskAlert{
			AssessmentID: record.ID,
			StudentID:    studentID,
			RiskLevel:    risk,
			CreatedAt:    record.CreatedAt,
		})
	}

	return &model.AssessmentResult{
		Assessment:           record,
		SentimentExplanation: result.SentimentExplanation,
	}, nil
}

// keepDraft writes the submitted answers back so a retry needs no re-entry
func (s *AssessmentService) keepDraft(ctx context.Context, studentID string, answers model.AnswerSet) {
	for id, v := range answers {
		if err := s.drafts.SetAnswer(ctx, studentID, id, v); err != nil {
			s.log.Warn("failed to keep draft after failed submission", "student_id", studentID, "error", err)
			return
		}
	}
}

// Get returns one assessment to its owner or to staff
func (s *AssessmentService) Get(ctx context.Context, viewerID string, viewerRole model.Role, id string) (*model.Assessment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if a.StudentID != viewerID && !viewerRole.IsStaff() {
		return nil, ErrForbidden
	}
	return a, nil
}

// List returns a student's assessments, newest first
func (s *AssessmentService) List(ctx context.Context, studentID string) ([]*model.Assessment, error) {
	list, err := s.repo.ListByStudent(ctx, studentID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	if list == nil {
		list = []*model.Assessment{}
	}
	return list, nil
}

// SaveDraftAnswer records one answer of an in-progress questionnaire
func (s *AssessmentService) SaveDraftAnswer(ctx context.Context, studentID, questionID string, value model.AnswerValue) error {
	q, ok := scoring.Lookup(s.questions, questionID)
	if !ok {
		return ErrNotFound
	}
	if q.FreeText {
		value = model.Text(value.String())
	} else if _, ok := q.OptionFor(value.String()); !ok || value.Kind != model.AnswerChoice {
		return &ValidationError{Invalid: []string{questionID}}
	}
	return s.drafts.SetAnswer(ctx, studentID, questionID, value)
}

// GetDraft returns the saved answers, empty when there is no draft
func (s *AssessmentService) GetDraft(ctx context.Context, studentID string) (model.AnswerSet, error) {
	draft, err := s.drafts.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return draft.Typed(s.questions), nil
}

func (s *AssessmentService) DiscardDraft(ctx context.Context, studentID string) error {
	return s.drafts.Delete(ctx, studentID)
}
