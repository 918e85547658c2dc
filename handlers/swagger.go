package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>statewise-jobs — Swagger</title>
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

// Minimal OpenAPI document covering the auth surface and the main listing reads.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "statewise-jobs", "version": "v0.1.0" },
  "paths": {
    "/api/auth/register": {
      "post": {
        "summary": "Create an account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "user and token" }, "400": { "description": "missing fields or password too short" }, "409": { "description": "email already registered" } }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Password sign-in",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "user and token" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/google": {
      "post": { "summary": "Google sign-in", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"credential":{"type":"string"}}}}}}, "responses": { "200": { "description": "user and token" }, "401": { "description": "invalid credential" } } }
    },
    "/api/auth/me": {
      "get": { "summary": "Current user from bearer token", "responses": { "200": { "description": "identity claims" }, "401": { "description": "unauthorized" } } }
    },
    "/api/jobs": {
      "get": { "summary": "List job notifications (page, limit, search)", "responses": { "200": { "description": "jobs with pagination" } } }
    },
    "/api/jobs/state-counts": {
      "get": { "summary": "Active job count per state", "responses": { "200": { "description": "state to count map" } } }
    },
    "/api/exam-calendar": {
      "get": { "summary": "List exam calendar entries", "responses": { "200": { "description": "exams with pagination" } } }
    },
    "/api/contact": {
      "post": { "summary": "Submit a contact message", "responses": { "201": { "description": "message stored" }, "400": { "description": "invalid payload" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
