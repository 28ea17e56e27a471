package service

import (
	"context"
	"errors"
	"time"

	"github.com/responder/responder/internal/question"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/pkg/logger"
	"github.com/responder/responder/pkg/metrics"
)

// Service defines the question operations used by the handler layer.
type Service interface {
	GetQuestions(ctx context.Context) ([]question.Question, error)
	GetQuestionByID(ctx context.Context, id string) ([]question.Question, error)
	AddQuestion(ctx context.Context, in question.QuestionInput) error
	GetAnswers(ctx context.Context, questionID string) ([]question.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) ([]question.Answer, error)
	AddAnswer(ctx context.Context, questionID string, in question.AnswerInput) error
	// Ping reports whether the backing store can be read.
	Ping(ctx context.Context) error
}

// New returns a Service backed by the given repository.
func New(repo *repository.QuestionRepository) Service {
	return &questionService{repo: repo}
}

// NewMemoryService returns a Service over an in-memory store seeded with qs.
func NewMemoryService(qs ...question.Question) Service {
	return New(repository.NewQuestionRepository(repository.NewMemoryStore(qs...)))
}

type questionService struct {
	repo *repository.QuestionRepository
}

func (s *questionService) GetQuestions(ctx context.Context) ([]question.Question, error) {
	defer s.observe("get_questions", time.Now())
	qs, err := s.repo.GetQuestions(ctx)
	return qs, s.record("get_questions", err)
}

func (s *questionService) GetQuestionByID(ctx context.Context, id string) ([]question.Question, error) {
	defer s.observe("get_question", time.Now())
	qs, err := s.repo.GetQuestionByID(ctx, id)
	return qs, s.record("get_question", err)
}

func (s *questionService) AddQuestion(ctx context.Context, in question.QuestionInput) error {
	defer s.observe("add_question", time.Now())
	return s.record("add_question", s.repo.AddQuestion(ctx, in))
}

func (s *questionService) GetAnswers(ctx context.Context, questionID string) ([]question.Answer, error) {
	defer s.observe("get_answers", time.Now())
	as, err := s.repo.GetAnswers(ctx, questionID)
	return as, s.record("get_answers", err)
}

func (s *questionService) GetAnswer(ctx context.Context, questionID, answerID string) ([]question.Answer, error) {
	defer s.observe("get_answer", time.Now())
	as, err := s.repo.GetAnswer(ctx, questionID, answerID)
	return as, s.record("get_answer", err)
}

func (s *questionService) AddAnswer(ctx context.Context, questionID string, in question.AnswerInput) error {
	defer s.observe("add_answer", time.Now())
	return s.record("add_answer", s.repo.AddAnswer(ctx, questionID, in))
}

func (s *questionService) Ping(ctx context.Context) error {
	_, err := s.repo.GetQuestions(ctx)
	return err
}

func (s *questionService) observe(op string, start time.Time) {
	metrics.RepositoryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// record counts the outcome of op and logs storage failures. err is returned unchanged.
func (s *questionService) record(op string, err error) error {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrValidation):
		result = "invalid"
	case errors.Is(err, repository.ErrStorageRead):
		result = "read_error"
	case errors.Is(err, repository.ErrStorageWrite):
		result = "write_error"
	default:
		result = "error"
	}
	metrics.RepositoryOperations.WithLabelValues(op, result).Inc()
	if err != nil && result != "invalid" {
		logger.Errorf("%s on %s failed: %v", op, s.repo.Location(), err)
	}
	return err
}
