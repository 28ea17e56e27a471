package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/responder/responder/internal/question"
)

// per-location write locks, shared by every repository in the process
var locationLocks sync.Map // map[string]*sync.Mutex

func lockFor(location string) *sync.Mutex {
	v, _ := locationLocks.LoadOrStore(location, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// QuestionRepository mediates every read and write of the question document.
// It caches nothing: each call works on what the store holds at call time.
type QuestionRepository struct {
	store Store
	mu    *sync.Mutex
}

// NewQuestionRepository returns a repository over store. Repositories built
// on stores with the same Location share one write lock.
func NewQuestionRepository(store Store) *QuestionRepository {
	return &QuestionRepository{store: store, mu: lockFor(store.Location())}
}

// Location returns the storage location backing the repository.
func (r *QuestionRepository) Location() string {
	return r.store.Location()
}

func (r *QuestionRepository) load(ctx context.Context) (question.Document, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Normalize(), nil
}

// GetQuestions returns every question in document order.
func (r *QuestionRepository) GetQuestions(ctx context.Context) ([]question.Question, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetQuestionByID returns all questions whose id equals id. A miss is an
// empty slice, not an error.
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id string) ([]question.Question, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []question.Question{}
	for _, q := range doc {
		if q.ID == id {
			out = append(out, q)
		}
	}
	return out, nil
}

// AddQuestion validates in, assigns fresh ids to the question and to any
// nested answers, and appends it to the document.
func (r *QuestionRepository) AddQuestion(ctx context.Context, in question.QuestionInput) error {
	if err := validate(in.Author, in.Summary); err != nil {
		return err
	}
	answers := make([]question.Answer, 0, len(in.Answers))
	for _, a := range in.Answers {
		if err := validate(a.Author, a.Summary); err != nil {
			return err
		}
		answers = append(answers, newAnswer(a))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc = append(doc, question.Question{
		ID:      uuid.NewString(),
		Author:  in.Author,
		Summary: in.Summary,
		Answers: answers,
	})
	return r.store.Save(ctx, doc)
}

// GetAnswers returns the answers of the first question matching questionID.
// An unknown question yields an empty slice, same as a question without
// answers.
func (r *QuestionRepository) GetAnswers(ctx context.Context, questionID string) ([]question.Answer, error) {
	qs, err := r.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return []question.Answer{}, nil
	}
	return qs[0].Answers, nil
}

// GetAnswer returns the answers of questionID whose id equals answerID.
func (r *QuestionRepository) GetAnswer(ctx context.Context, questionID, answerID string) ([]question.Answer, error) {
	answers, err := r.GetAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	out := []question.Answer{}
	for _, a := range answers {
		if a.ID == answerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// AddAnswer appends a new answer to every question matching questionID. The
// document is saved even when nothing matched.
func (r *QuestionRepository) AddAnswer(ctx context.Context, questionID string, in question.AnswerInput) error {
	if err := validate(in.Author, in.Summary); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc {
		if doc[i].ID == questionID {
			doc[i].Answers = append(doc[i].Answers, newAnswer(in))
		}
	}
	return r.store.Save(ctx, doc)
}

func newAnswer(in question.AnswerInput) question.Answer {
	return question.Answer{ID: uuid.NewString(), Author: in.Author, Summary: in.Summary}
}

func validate(author, summary string) error {
	if strings.TrimSpace(author) == "" {
		return &ValidationError{Field: "author"}
	}
	if strings.TrimSpace(summary) == "" {
		return &ValidationError{Field: "summary"}
	}
	return nil
}

// Replace overwrites the whole document with doc after checking that every
// entry has an id, non-empty fields and an id unique at its level. Used by
// maintenance tooling; the HTTP API never replaces.
func (r *QuestionRepository) Replace(ctx context.Context, doc question.Document) error {
	seen := make(map[string]struct{}, len(doc))
	for _, q := range doc {
		if err := checkImported(q.ID, q.Author, q.Summary, seen); err != nil {
			return err
		}
		answerIDs := make(map[string]struct{}, len(q.Answers))
		for _, a := range q.Answers {
			if err := checkImported(a.ID, a.Author, a.Summary, answerIDs); err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Save(ctx, doc.Clone().Normalize())
}

func checkImported(id, author, summary string, seen map[string]struct{}) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id"}
	}
	if _, dup := seen[id]; dup {
		return &ValidationError{Field: "id", Duplicate: id}
	}
	seen[id] = struct{}{}
	return validate(author, summary)
}
