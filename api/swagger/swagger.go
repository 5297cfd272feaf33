package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Placement Analytics API",
        "description": "Student and trainer performance analytics for placement training programmes",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Performance", "description": "Student performance views"},
        {"name": "Trainer Analytics", "description": "Cohort rollups and exports"},
        {"name": "System", "description": "Health and instrumentation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Dependency readiness",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/HealthResponse"}},
                    "503": {"description": "Degraded", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Prometheus exposition format"}
                }
            }
        },
        "/api/v1/students/me/performance": {
            "get": {
                "tags": ["Performance"],
                "summary": "Student performance grouped by year and month",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student profile not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/me/performance/hero": {
            "get": {
                "tags": ["Performance"],
                "summary": "Latest month snapshot for the dashboard hero card",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/me/performance/insights": {
            "get": {
                "tags": ["Performance"],
                "summary": "Personalised tips and month-over-month trend",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/me/performance/alerts": {
            "get": {
                "tags": ["Performance"],
                "summary": "Check for evaluation changes since a timestamp",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "since", "in": "query", "type": "string", "format": "date-time", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid since", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/trainer/analytics": {
            "get": {
                "tags": ["Trainer Analytics"],
                "summary": "Cohort performance analytics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "batch", "in": "query", "type": "string", "required": false},
                    {"name": "studentProfileId", "in": "query", "type": "string", "format": "uuid", "required": false},
                    {"name": "month", "in": "query", "type": "string", "description": "YYYY-MM", "required": false},
                    {"name": "threshold", "in": "query", "type": "number", "minimum": 0, "maximum": 100, "required": false},
                    {"name": "trainerId", "in": "query", "type": "string", "format": "uuid", "description": "Coordinators only", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Foreign cohort", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/trainer/analytics/alerts": {
            "get": {
                "tags": ["Trainer Analytics"],
                "summary": "Check for cohort evaluation changes since a timestamp",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "since", "in": "query", "type": "string", "format": "date-time", "required": false},
                    {"name": "batch", "in": "query", "type": "string", "required": false},
                    {"name": "trainerId", "in": "query", "type": "string", "format": "uuid", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/trainer/analytics/export": {
            "get": {
                "tags": ["Trainer Analytics"],
                "summary": "Download the per-student cohort table",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "required": true},
                    {"name": "batch", "in": "query", "type": "string", "required": false},
                    {"name": "month", "in": "query", "type": "string", "required": false},
                    {"name": "trainerId", "in": "query", "type": "string", "format": "uuid", "required": false}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/system": {
            "get": {
                "tags": ["System"],
                "summary": "Analytics engine counters",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"type": "string"}}
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
