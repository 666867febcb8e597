package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Curriculum Scheduler API",
        "description": "Generates conflict-free course schedules and manages versioned schedule runs.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Scheduler", "description": "Proposal generation and stored schedule runs"},
        {"name": "Exports", "description": "Asynchronous CSV/PDF exports of stored runs"}
    ],
    "paths": {
        "/schedules/generate": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Generate a schedule proposal",
                "description": "Runs the engine on an inline snapshot. Results are cached by snapshot fingerprint.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No sections could be generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/save": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Persist a proposal as a draft run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal expired or unknown", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Proposal has conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-runs": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "List schedule runs for a term",
                "parameters": [
                    {"name": "term", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-runs/{id}": {
            "delete": {
                "tags": ["Scheduler"],
                "summary": "Delete a draft run",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Run is not a draft", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-runs/{id}/assignments": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Get assignment rows of a run",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-runs/{id}/report": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Utilization and timetable report of a run",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-runs/{id}/publish": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Publish a draft run",
                "description": "Archives the previously published run of the same term.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already published or archived", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue an export of a stored run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export via signed token",
                "security": [],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Course": {
            "type": "object",
            "properties": {
                "program": {"type": "string"},
                "year": {"type": "integer"},
                "term": {"type": "string"},
                "code": {"type": "string"},
                "title": {"type": "string"},
                "lecture_hours": {"type": "number"},
                "lab_hours": {"type": "number"}
            },
            "required": ["program", "year", "term", "code"]
        },
        "Room": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "capacity": {"type": "integer"},
                "type": {"type": "string", "enum": ["LECTURE", "LAB", "EITHER"]},
                "available_days": {"type": "array", "items": {"type": "string"}},
                "opens": {"type": "string", "example": "07:00"},
                "closes": {"type": "string", "example": "21:00"}
            },
            "required": ["id", "capacity", "type"]
        },
        "Faculty": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "employment_type": {"type": "string", "enum": ["FULL_TIME", "PART_TIME"]},
                "qualifications": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["id", "employment_type"]
        },
        "Enrollment": {
            "type": "object",
            "properties": {
                "program": {"type": "string"},
                "year": {"type": "integer"},
                "term": {"type": "string"},
                "count": {"type": "integer"}
            },
            "required": ["program", "year", "term", "count"]
        },
        "GenerateScheduleRequest": {
            "type": "object",
            "properties": {
                "term": {"type": "string"},
                "seed": {"type": "integer"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/Room"}},
                "faculty": {"type": "array", "items": {"$ref": "#/definitions/Faculty"}},
                "enrollments": {"type": "array", "items": {"$ref": "#/definitions/Enrollment"}}
            },
            "required": ["courses", "rooms", "faculty", "enrollments"]
        },
        "SaveScheduleRequest": {
            "type": "object",
            "properties": {
                "proposalId": {"type": "string"}
            },
            "required": ["proposalId"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "scheduleRunId": {"type": "string", "format": "uuid"},
                "view": {"type": "string", "enum": ["assignments", "unscheduled", "utilization", "load_warnings"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "sectionId": {"type": "string"},
                "facultyId": {"type": "string"}
            },
            "required": ["scheduleRunId", "view", "format"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
