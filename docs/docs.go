// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/v1/auth/login": {
            "post": {"tags": ["auth"], "summary": "Sign in with a registration number (students) or email and password (staff)",
                "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials"}}}
        },
        "/v1/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Register a new student account",
                "responses": {"201": {"description": "token and user"}, "409": {"description": "already registered"}, "422": {"description": "invalid fields"}}}
        },
        "/v1/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Revoke the current token", "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "revoked"}}}
        },
        "/v1/auth/me": {
            "get": {"tags": ["auth"], "summary": "The signed-in user", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "user"}}}
        },
        "/v1/questionnaire": {
            "get": {"tags": ["assessments"], "summary": "The fixed wellness questionnaire",
                "responses": {"200": {"description": "question definitions"}}}
        },
        "/v1/assessments": {
            "get": {"tags": ["assessments"], "summary": "The student's assessment history", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "assessments, newest first"}}},
            "post": {"tags": ["assessments"], "summary": "Submit a completed questionnaire for scoring and analysis", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "stored assessment"}, "422": {"description": "missing or invalid answers"}, "502": {"description": "analysis failed, answers kept as draft"}}}
        },
        "/v1/assessments/{id}": {
            "get": {"tags": ["assessments"], "summary": "One assessment (owner or staff)", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "assessment"}, "403": {"description": "not the owner"}, "404": {"description": "not found"}}}
        },
        "/v1/assessments/draft": {
            "get": {"tags": ["assessments"], "summary": "In-progress answers", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "draft answers"}}},
            "delete": {"tags": ["assessments"], "summary": "Discard in-progress answers", "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "discarded"}}}
        },
        "/v1/assessments/draft/{questionId}": {
            "put": {"tags": ["assessments"], "summary": "Save one in-progress answer", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "questionId", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "saved"}, "404": {"description": "unknown question"}, "422": {"description": "invalid option"}}}
        },
        "/v1/reports/risk-distribution": {
            "get": {"tags": ["reports"], "summary": "Assessment counts per risk level", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "distribution"}}}
        },
        "/v1/reports/risk-trends": {
            "get": {"tags": ["reports"], "summary": "Weekly assessment counts per risk level, oldest week first", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "weeks", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "one entry per week"}}}
        },
        "/v1/reports/critical-cases": {
            "get": {"tags": ["reports"], "summary": "Most recent high and critical assessments", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "case summaries"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MindWell API",
	Description:      "Student wellness assessments with scored risk levels and generated narrative feedback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
