// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in a student",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionResponse"}},
                    "400": {"description": "login.error.empty"},
                    "401": {"description": "login.error.invalid"}
                }
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionResponse"}}}}
        },
        "/auth/session": {
            "get": {"tags": ["auth"], "summary": "Get the current session", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionResponse"}}}}
        },
        "/progress": {
            "get": {"tags": ["progress"], "summary": "Get study progress", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StudyProgress"}}}}
        },
        "/progress/summary": {
            "get": {"tags": ["progress"], "summary": "Get progress statistics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProgressSummary"}}}}
        },
        "/progress/visits": {
            "post": {
                "tags": ["progress"],
                "summary": "Record a section visit",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.VisitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StudyProgress"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/progress/time": {
            "post": {
                "tags": ["progress"],
                "summary": "Add study time",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.TimeSpentRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StudyProgress"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/progress/quiz-results": {
            "post": {
                "tags": ["progress"],
                "summary": "Record a quiz result",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.QuizResultRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.QuizResult"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/notes": {
            "get": {
                "tags": ["notes"],
                "summary": "Get notes",
                "parameters": [{"type": "string", "in": "query", "name": "section"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Note"}}}}
            },
            "post": {
                "tags": ["notes"],
                "summary": "Create a note",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.NoteRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Note"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/notes/{id}": {
            "put": {
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.NoteRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Note"}}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/bookmarks": {
            "get": {"tags": ["bookmarks"], "summary": "Get bookmarks", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Bookmark"}}}}},
            "post": {
                "tags": ["bookmarks"],
                "summary": "Add a bookmark",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.BookmarkRequest"}}],
                "responses": {"200": {"description": "Already bookmarked", "schema": {"$ref": "#/definitions/models.Bookmark"}}, "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Bookmark"}}}
            }
        },
        "/bookmarks/check": {
            "get": {
                "tags": ["bookmarks"],
                "summary": "Check a bookmark",
                "parameters": [{"type": "string", "in": "query", "name": "url", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bookmarks/toggle": {
            "post": {
                "tags": ["bookmarks"],
                "summary": "Toggle a bookmark",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.BookmarkRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BookmarkToggleResponse"}}}
            }
        },
        "/bookmarks/{id}": {
            "delete": {
                "tags": ["bookmarks"],
                "summary": "Remove a bookmark",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/settings": {
            "get": {"tags": ["settings"], "summary": "Get settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}}}},
            "put": {
                "tags": ["settings"],
                "summary": "Update settings",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.Settings"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/quiz": {
            "get": {
                "tags": ["quiz"],
                "summary": "Get quiz questions",
                "parameters": [{"type": "string", "in": "query", "name": "locale"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.QuizQuestion"}}}, "400": {"description": "Bad Request"}}
            }
        },
        "/quiz/submit": {
            "post": {
                "tags": ["quiz"],
                "summary": "Submit quiz answers",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.QuizSubmitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuizOutcome"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/contributions": {
            "get": {"tags": ["contributions"], "summary": "Get approved contributions", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Submission"}}}}},
            "post": {
                "tags": ["contributions"],
                "summary": "Submit a contribution",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SubmissionRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Submission"}}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/events": {
            "get": {"tags": ["events"], "summary": "Stream record changes", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/admin/students": {
            "get": {"security": [{"AdminKey": []}], "tags": ["admin"], "summary": "Get the class roster", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}}}},
            "put": {
                "security": [{"AdminKey": []}],
                "tags": ["admin"],
                "summary": "Replace the class roster",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/backup": {
            "get": {"security": [{"AdminKey": []}], "tags": ["admin"], "summary": "Export the store", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Backup"}}}},
            "post": {
                "security": [{"AdminKey": []}],
                "tags": ["admin"],
                "summary": "Import a backup",
                "parameters": [
                    {"type": "boolean", "in": "query", "name": "clear"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.Backup"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ImportResult"}}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "models.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "models.User": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "name": {"type": "string"}, "nameFr": {"type": "string"}, "loginTime": {"type": "string"}}},
        "models.SessionResponse": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "user": {"$ref": "#/definitions/models.User"}}},
        "models.Student": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "nameFr": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"}}},
        "models.QuizResult": {"type": "object", "properties": {"date": {"type": "string"}, "score": {"type": "integer"}, "totalQuestions": {"type": "integer"}, "percentage": {"type": "number"}}},
        "models.StudyProgress": {
            "type": "object",
            "properties": {
                "sectionsVisited": {"type": "array", "items": {"type": "string"}},
                "lastVisit": {"type": "object", "additionalProperties": {"type": "string"}},
                "timeSpent": {"type": "object", "additionalProperties": {"type": "number"}},
                "quizResults": {"type": "array", "items": {"$ref": "#/definitions/models.QuizResult"}}
            }
        },
        "models.ProgressSummary": {
            "type": "object",
            "properties": {
                "sectionsVisited": {"type": "integer"},
                "totalTimeSpent": {"type": "number"},
                "quizzesTaken": {"type": "integer"},
                "averageScore": {"type": "number"},
                "bestScore": {"type": "number"},
                "recentResults": {"type": "array", "items": {"$ref": "#/definitions/models.QuizResult"}}
            }
        },
        "models.VisitRequest": {"type": "object", "properties": {"section": {"type": "string"}, "path": {"type": "string"}}},
        "models.TimeSpentRequest": {"type": "object", "required": ["section"], "properties": {"section": {"type": "string"}, "minutes": {"type": "number"}}},
        "models.QuizResultRequest": {"type": "object", "properties": {"score": {"type": "integer"}, "totalQuestions": {"type": "integer"}}},
        "models.Note": {"type": "object", "properties": {"id": {"type": "string"}, "section": {"type": "string"}, "content": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "models.NoteRequest": {"type": "object", "required": ["section", "content"], "properties": {"section": {"type": "string"}, "content": {"type": "string"}}},
        "models.Bookmark": {"type": "object", "properties": {"id": {"type": "string"}, "section": {"type": "string"}, "title": {"type": "string"}, "url": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.BookmarkRequest": {"type": "object", "required": ["section", "title", "url"], "properties": {"section": {"type": "string"}, "title": {"type": "string"}, "url": {"type": "string"}}},
        "models.BookmarkToggleResponse": {"type": "object", "properties": {"bookmarked": {"type": "boolean"}, "bookmark": {"$ref": "#/definitions/models.Bookmark"}}},
        "models.Settings": {"type": "object", "properties": {"theme": {"type": "string", "enum": ["dark", "light"]}, "language": {"type": "string", "enum": ["ar", "fr"]}, "notifications": {"type": "boolean"}}},
        "models.QuizQuestion": {"type": "object", "properties": {"index": {"type": "integer"}, "question": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}}},
        "models.QuizSubmitRequest": {"type": "object", "required": ["locale", "answers"], "properties": {"locale": {"type": "string"}, "answers": {"type": "array", "items": {"type": "string"}}}},
        "models.QuizAnswerReview": {"type": "object", "properties": {"index": {"type": "integer"}, "answer": {"type": "string"}, "correctAnswer": {"type": "string"}, "correct": {"type": "boolean"}, "explanation": {"type": "string"}}},
        "models.QuizOutcome": {
            "type": "object",
            "properties": {
                "result": {"$ref": "#/definitions/models.QuizResult"},
                "rating": {"type": "string", "enum": ["good", "medium", "bad"]},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/models.QuizAnswerReview"}}
            }
        },
        "models.Submission": {"type": "object", "properties": {"id": {"type": "integer"}, "createdAt": {"type": "string"}, "name": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}, "isApproved": {"type": "boolean"}}},
        "models.SubmissionRequest": {"type": "object", "required": ["name", "title", "content"], "properties": {"name": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}}},
        "models.Backup": {"type": "object", "properties": {"version": {"type": "integer"}, "exportedAt": {"type": "string"}, "driver": {"type": "string"}, "entries": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "models.ImportResult": {"type": "object", "properties": {"imported": {"type": "integer"}, "removed": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "AdminKey": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "DeviceToken": {"type": "apiKey", "name": "X-Device-Token", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Antigone Study API",
	Description:      "Study records, class roster login and quiz content of the Antigone study guide",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
