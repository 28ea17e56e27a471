package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/responder/responder/internal/question"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/internal/question/service"
)

var updatedResponse = gin.H{"status": "ok", "message": "questions data updated"}

// RegisterQuestionRoutes wires the question API onto r. writeGuards run in
// front of the POST routes only (e.g. an auth middleware); reads stay open.
func RegisterQuestionRoutes(r gin.IRouter, svc service.Service, writeGuards ...gin.HandlerFunc) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to responder!"})
	})

	r.GET("/questions", func(c *gin.Context) {
		qs, err := svc.GetQuestions(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, qs)
	})

	r.GET("/questions/:id", func(c *gin.Context) {
		qs, err := svc.GetQuestionByID(c.Request.Context(), param(c, "id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, qs)
	})

	r.POST("/questions", with(writeGuards, func(c *gin.Context) {
		var in question.QuestionInput
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		if err := svc.AddQuestion(c.Request.Context(), in); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updatedResponse)
	})...)

	r.GET("/questions/:id/answers", func(c *gin.Context) {
		as, err := svc.GetAnswers(c.Request.Context(), param(c, "id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, as)
	})

	r.POST("/questions/:id/answers", with(writeGuards, func(c *gin.Context) {
		var in question.AnswerInput
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		if err := svc.AddAnswer(c.Request.Context(), param(c, "id"), in); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updatedResponse)
	})...)

	r.GET("/questions/:id/answers/:answerId", func(c *gin.Context) {
		as, err := svc.GetAnswer(c.Request.Context(), param(c, "id"), param(c, "answerId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, as)
	})
}

func with(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}

// param returns a path parameter with one leading ':' removed, so both
// /questions/abc and /questions/:abc address question "abc".
func param(c *gin.Context, name string) string {
	return strings.TrimPrefix(c.Param(name), ":")
}

func respondError(c *gin.Context, err error) {
	var verr *repository.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal error"})
}
