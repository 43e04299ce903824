package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Udyami PMP API",
        "description": "Participant management dashboard backend for the Udyami entrepreneurship program",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, token refresh and account management"},
        {"name": "Dashboard", "description": "Pending-review rollups for admins and coaches"},
        {"name": "Reports", "description": "Custom report generator and async exports"},
        {"name": "Bulk", "description": "Multi-record review actions"},
        {"name": "Sessions", "description": "Cohort session completion and special session links"},
        {"name": "Audit", "description": "Record change history"},
        {"name": "Navigation", "description": "Role-based navigation resolution"},
        {"name": "Participants", "description": "Participant roster"},
        {"name": "Metrics", "description": "Operational metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Global pending-review summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/dashboard/participants": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Per-participant pending rollups, busiest first",
                "parameters": [
                    {"name": "batch", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/catalog": {
            "get": {
                "tags": ["Reports"],
                "summary": "List report sources and selectable fields",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/table": {
            "post": {
                "tags": ["Reports"],
                "summary": "Generate a tabular report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid report request"}
                }
            }
        },
        "/api/v1/reports/chart": {
            "post": {
                "tags": ["Reports"],
                "summary": "Generate status distribution buckets",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/exports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue an async CSV or PDF export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/exports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the job creator"}
                }
            }
        },
        "/api/v1/reports/exports/download/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished export via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/api/v1/bulk/tasks/verify": {
            "post": {
                "tags": ["Bulk"],
                "summary": "Verify selected tasks for one participant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkVerifyTasksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A task was rejected; partial result included"}
                }
            }
        },
        "/api/v1/bulk/documents/approve": {
            "post": {
                "tags": ["Bulk"],
                "summary": "Approve pending documents in one statement",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/bulk/stages/complete": {
            "post": {
                "tags": ["Bulk"],
                "summary": "Mark journey stages completed for one participant",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/complete": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Record a cohort session as attended",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompleteSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/links": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List special session links visible to the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Sessions"],
                "summary": "Create a special session link",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/links/{id}": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Edit a session link",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Link already completed"}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete a session link permanently",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Missing confirm=true"}
                }
            }
        },
        "/api/v1/sessions/links/{id}/complete": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Mark a session link completed (terminal)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already completed"}
                }
            }
        },
        "/api/v1/audit/{table}/{record}": {
            "get": {
                "tags": ["Audit"],
                "summary": "Change history for a record",
                "parameters": [
                    {"name": "table", "in": "path", "required": true, "type": "string"},
                    {"name": "record", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/navigation": {
            "get": {
                "tags": ["Navigation"],
                "summary": "Navigation links and landing page for the caller's role",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/participants": {
            "get": {
                "tags": ["Participants"],
                "summary": "List participant profiles",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "batch", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/metrics/snapshot": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Aggregated request, cache and export stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ReportRequest": {
            "type": "object",
            "properties": {
                "source": {"type": "string", "enum": ["profiles", "task_submissions", "documents", "trades", "attendance", "participant_progress", "ecommerce_setups"]},
                "fields": {"type": "array", "items": {"type": "string"}},
                "batch": {"type": "string"},
                "status": {"type": "string"},
                "date_from": {"type": "string"},
                "date_to": {"type": "string"}
            },
            "required": ["source", "fields"]
        },
        "ExportRequest": {
            "allOf": [
                {"$ref": "#/definitions/ReportRequest"},
                {
                    "type": "object",
                    "properties": {
                        "format": {"type": "string", "enum": ["csv", "pdf"]}
                    },
                    "required": ["format"]
                }
            ]
        },
        "BulkVerifyTasksRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "task_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["user_id", "task_ids"]
        },
        "CompleteSessionRequest": {
            "type": "object",
            "properties": {
                "session_type": {"type": "string", "enum": ["orientation", "mentorship", "masterclass", "ecommerce_setup", "graduation"]},
                "batch": {"type": "string"}
            },
            "required": ["session_type"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
