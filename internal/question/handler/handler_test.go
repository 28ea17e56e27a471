package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/responder/responder/internal/question"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/internal/question/service"
	"github.com/stretchr/testify/require"
)

func seeded() []question.Question {
	return []question.Question{{
		ID:      "Q1",
		Author:  "Jack London",
		Summary: "What is my name?",
		Answers: []question.Answer{
			{ID: "A1", Author: "Tim", Summary: "Who?"},
			{ID: "A2", Author: "Jemmy", Summary: "Where?"},
		},
	}}
}

func newRouter(svc service.Service, guards ...gin.HandlerFunc) *gin.Engine {
	g := gin.New()
	RegisterQuestionRoutes(g, svc, guards...)
	return g
}

func do(g *gin.Engine, method, target, contentType, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	g.ServeHTTP(w, req)
	return w
}

func TestQuestionHandler_Reads(t *testing.T) {
	g := newRouter(service.NewMemoryService(seeded()...))

	w := do(g, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Welcome to responder!"}`, w.Body.String())

	w = do(g, http.MethodGet, "/questions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var qs []question.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
	require.Len(t, qs, 1)

	for _, path := range []string{"/questions/Q1", "/questions/:Q1"} {
		w = do(g, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
		require.Len(t, qs, 1, path)
	}

	w = do(g, http.MethodGet, "/questions/missing", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	w = do(g, http.MethodGet, "/questions/Q1/answers", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var as []question.Answer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &as))
	require.Len(t, as, 2)

	w = do(g, http.MethodGet, "/questions/missing/answers", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	w = do(g, http.MethodGet, "/questions/:Q1/answers/:A2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"id":"A2","author":"Jemmy","summary":"Where?"}]`, w.Body.String())

	w = do(g, http.MethodGet, "/questions/Q1/answers/ZZZ", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestQuestionHandler_CreateQuestionJSONAndForm(t *testing.T) {
	svc := service.NewMemoryService()
	g := newRouter(svc)

	w := do(g, http.MethodPost, "/questions", "application/json",
		`{"id":1234,"author":"Frank","summary":"What?","answers":[{"id":"mine","author":"Tim","summary":"That."}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok","message":"questions data updated"}`, w.Body.String())

	form := url.Values{"author": {"Norman"}, "summary": {"Any of them?"}, "id": {"chosen"}}
	w = do(g, http.MethodPost, "/questions", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/questions", "", "")
	var qs []question.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
	require.Len(t, qs, 2)
	require.NotEqual(t, "1234", qs[0].ID)
	require.Len(t, qs[0].Answers, 1)
	require.NotEqual(t, "mine", qs[0].Answers[0].ID)
	require.Equal(t, "Norman", qs[1].Author)
	require.NotEqual(t, "chosen", qs[1].ID)
	require.NotNil(t, qs[1].Answers)
}

func TestQuestionHandler_CreateAnswer(t *testing.T) {
	g := newRouter(service.NewMemoryService(seeded()...))

	w := do(g, http.MethodPost, "/questions/:Q1/answers", "application/json", `{"author":"Norman","summary":"Who?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/questions/Q1/answers", "", "")
	var as []question.Answer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &as))
	require.Len(t, as, 3)

	// unknown question: accepted, nothing changes
	w = do(g, http.MethodPost, "/questions/nope/answers", "application/json", `{"author":"Norman","summary":"Who?"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQuestionHandler_Validation(t *testing.T) {
	g := newRouter(service.NewMemoryService(seeded()...))

	w := do(g, http.MethodPost, "/questions", "application/json", `{"author":"Norman","summary":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "empty input")

	w = do(g, http.MethodPost, "/questions/Q1/answers", "application/json", `{"author":"","summary":"x"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPost, "/questions", "application/json", `{"author":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodGet, "/questions", "", "")
	var qs []question.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
	require.Len(t, qs, 1)
	require.Len(t, qs[0].Answers, 2)
}

func TestQuestionHandler_StorageFailureIs500(t *testing.T) {
	repo := repository.NewQuestionRepository(repository.NewFileStore(t.TempDir() + "/absent.json"))
	g := newRouter(service.New(repo))

	w := do(g, http.MethodGet, "/questions", "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"status":"error","message":"internal error"}`, w.Body.String())

	w = do(g, http.MethodPost, "/questions", "application/json", `{"author":"a","summary":"b"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQuestionHandler_WriteGuardsOnlyOnPost(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	g := newRouter(service.NewMemoryService(seeded()...), deny)

	require.Equal(t, http.StatusOK, do(g, http.MethodGet, "/questions", "", "").Code)
	require.Equal(t, http.StatusOK, do(g, http.MethodGet, "/questions/Q1/answers", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/questions", "application/json", `{"author":"a","summary":"b"}`).Code)
	require.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/questions/Q1/answers", "application/json", `{"author":"a","summary":"b"}`).Code)
}
