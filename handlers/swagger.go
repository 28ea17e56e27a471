package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the question API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>responder API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "responder", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Answer": { "type": "object", "properties": { "id": {"type":"string"}, "author": {"type":"string"}, "summary": {"type":"string"} } },
      "Question": { "type": "object", "properties": { "id": {"type":"string"}, "author": {"type":"string"}, "summary": {"type":"string"}, "answers": {"type":"array","items":{"$ref":"#/components/schemas/Answer"}} } },
      "AnswerInput": { "type": "object", "required": ["author","summary"], "properties": { "author": {"type":"string"}, "summary": {"type":"string"} } },
      "QuestionInput": { "type": "object", "required": ["author","summary"], "properties": { "author": {"type":"string"}, "summary": {"type":"string"}, "answers": {"type":"array","items":{"$ref":"#/components/schemas/AnswerInput"}} } },
      "Status": { "type": "object", "properties": { "status": {"type":"string"}, "message": {"type":"string"} } }
    }
  },
  "paths": {
    "/questions": {
      "get": { "summary": "List questions", "responses": { "200": { "description": "all questions", "content": { "application/json": { "schema": {"type":"array","items":{"$ref":"#/components/schemas/Question"}} } } } } },
      "post": { "summary": "Create a question", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/QuestionInput"} }, "application/x-www-form-urlencoded": { "schema": {"$ref":"#/components/schemas/AnswerInput"} } } }, "responses": { "200": { "description": "questions data updated" }, "400": { "description": "empty input" }, "401": { "description": "missing or invalid bearer token" } } }
    },
    "/questions/{id}": {
      "get": { "summary": "Questions with the given id (0 or 1)", "responses": { "200": { "description": "matching questions" } } }
    },
    "/questions/{id}/answers": {
      "get": { "summary": "Answers of a question", "responses": { "200": { "description": "answers, empty when the question is unknown" } } },
      "post": { "summary": "Add an answer", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/AnswerInput"} } } }, "responses": { "200": { "description": "questions data updated" }, "400": { "description": "empty input" } } }
    },
    "/questions/{id}/answers/{answerId}": {
      "get": { "summary": "Answer with the given id (0 or 1)", "responses": { "200": { "description": "matching answers" } } }
    },
    "/health": { "get": { "summary": "Liveness", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness: the document store can be read", "responses": { "200": { "description": "ready" }, "503": { "description": "store unavailable" } } } }
  }
}`
