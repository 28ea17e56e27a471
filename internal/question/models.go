package question

// Answer is a reply attached to exactly one Question.
type Answer struct {
	ID      string `json:"id" bson:"id"`
	Author  string `json:"author" bson:"author"`
	Summary string `json:"summary" bson:"summary"`
}

// Question is a catalog entry. Answers keep insertion order and are never nil
// once a question has passed through the repository.
type Question struct {
	ID      string   `json:"id" bson:"id"`
	Author  string   `json:"author" bson:"author"`
	Summary string   `json:"summary" bson:"summary"`
	Answers []Answer `json:"answers" bson:"answers"`
}

// Document is the whole persisted state: every question, in order.
type Document []Question

// AnswerInput carries the client-controlled fields of a new answer.
type AnswerInput struct {
	Author  string `json:"author" form:"author"`
	Summary string `json:"summary" form:"summary"`
}

// QuestionInput carries the client-controlled fields of a new question.
// It has no ID field: identifiers are assigned by the repository.
type QuestionInput struct {
	Author  string        `json:"author" form:"author"`
	Summary string        `json:"summary" form:"summary"`
	Answers []AnswerInput `json:"answers" form:"-"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for i, q := range d {
		out[i] = q
		out[i].Answers = append(make([]Answer, 0, len(q.Answers)), q.Answers...)
	}
	return out
}

// Normalize replaces missing answer lists with empty ones.
func (d Document) Normalize() Document {
	if d == nil {
		return Document{}
	}
	for i := range d {
		if d[i].Answers == nil {
			d[i].Answers = []Answer{}
		}
	}
	return d
}
