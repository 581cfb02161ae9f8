package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduSphere Timetable API",
        "description": "Automatic school timetable generation service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Generation, drafts, commits, exports"},
        {"name": "Constraints", "description": "Teacher unavailability windows"}
    ],
    "paths": {
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a timetable proposal from a wizard snapshot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/draft": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the user's current draft",
                "parameters": [
                    {"name": "userId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No draft for user"}
                }
            },
            "post": {
                "tags": ["Timetable"],
                "summary": "Save a generated proposal as the user's draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveDraftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        },
        "/timetable/commit": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Commit the user's draft as the final timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Draft has no lessons"}
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export the user's draft as PDF or CSV",
                "parameters": [
                    {"name": "userId", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "produces": ["application/pdf", "text/csv"],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/teachers/{id}/lessons": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List a teacher's committed lessons",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/constraints": {
            "get": {
                "tags": ["Constraints"],
                "summary": "List a teacher's unavailability windows",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/constraints": {
            "post": {
                "tags": ["Constraints"],
                "summary": "Declare a teacher unavailability window",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateConstraintRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/constraints/{id}": {
            "delete": {
                "tags": ["Constraints"],
                "summary": "Delete a teacher unavailability window",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/lessons/validate": {
            "post": {
                "tags": ["Constraints"],
                "summary": "Check a proposed lesson against a teacher's windows",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateLessonRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "school": {
                    "type": "object",
                    "properties": {
                        "startTime": {"type": "string", "example": "08:00"},
                        "endTime": {"type": "string", "example": "17:00"},
                        "schoolDays": {"type": "array", "items": {"type": "string"}},
                        "sessionDuration": {"type": "integer"}
                    }
                },
                "classes": {"type": "array", "items": {"type": "object"}},
                "subjects": {"type": "array", "items": {"type": "object"}},
                "teachers": {"type": "array", "items": {"type": "object"}},
                "rooms": {"type": "array", "items": {"type": "object"}},
                "lessonRequirements": {"type": "array", "items": {"type": "object"}},
                "teacherConstraints": {"type": "array", "items": {"type": "object"}}
            },
            "required": ["school"]
        },
        "LessonSlot": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "subjectId": {"type": "integer"},
                "teacherId": {"type": "integer"},
                "classId": {"type": "integer"},
                "classroomId": {"type": "integer", "x-nullable": true}
            }
        },
        "SaveDraftRequest": {
            "type": "object",
            "properties": {
                "proposalId": {"type": "string"},
                "userId": {"type": "string"}
            },
            "required": ["proposalId", "userId"]
        },
        "CommitDraftRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"}
            },
            "required": ["userId"]
        },
        "CreateConstraintRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "integer"},
                "day": {"type": "string"},
                "startTime": {"type": "string", "example": "08:00"},
                "endTime": {"type": "string", "example": "10:00"},
                "description": {"type": "string"}
            },
            "required": ["teacherId", "day", "startTime", "endTime"]
        },
        "ValidateLessonRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "integer"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            },
            "required": ["teacherId", "day", "startTime", "endTime"]
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
