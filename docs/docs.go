// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/v1/spots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["spots"],
                "summary": "Latest spots through the saved filter",
                "responses": {"200": {"description": "filters, facets and spots", "schema": {"type": "object"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["spots"],
                "summary": "Update the filter and return the filtered spots",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.FilterUpdate"}}],
                "responses": {
                    "200": {"description": "filters, facets and spots", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/filters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["spots"],
                "summary": "Current spot filter",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FilterCriteria"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["spots"],
                "summary": "Update the spot filter",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.FilterUpdate"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FilterCriteria"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/rig": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rig"],
                "summary": "Transceiver state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.RigState"}}}
            }
        },
        "/api/v1/rig/tune": {
            "post": {
                "description": "Sets frequency then mode through the rig controller. Returns 502 with the report when any command failed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rig"],
                "summary": "Tune the transceiver",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.tuneRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TuneReport"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/service.TuneReport"}}
                }
            }
        },
        "/api/v1/contacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "List contacts",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"type": "string", "example": "40m", "name": "band", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, contacts", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Appends the contact to the ADIF log and stores it. Band, MHz frequency and UTC date/time are derived.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Log a contact",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.ContactInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Contact"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "description": "Filter events by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List station events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "name": "to", "in": "query"},
                    {"enum": ["TUNE", "TUNE_CORRECTED", "RIG_ERROR", "CONTACT"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "handlers.tuneRequest": {
            "type": "object",
            "properties": {
                "freq": {"type": "string", "example": "7200"},
                "mode": {"type": "string", "example": "SSB"}
            }
        },
        "models.FilterCriteria": {
            "type": "object",
            "properties": {
                "band": {"type": "string"},
                "mode": {"type": "string"},
                "program": {"type": "string"},
                "sort_by": {"type": "string"},
                "exclude_terminated": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Contact": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "call": {"type": "string"},
                "frequency_khz": {"type": "string"},
                "frequency_mhz": {"type": "string"},
                "band": {"type": "string"},
                "mode": {"type": "string"},
                "reference": {"type": "string"},
                "park_name": {"type": "string"},
                "comment": {"type": "string"},
                "qso_date": {"type": "string"},
                "time_on": {"type": "string"},
                "logged_at": {"type": "string"}
            }
        },
        "service.ContactInput": {
            "type": "object",
            "properties": {
                "call": {"type": "string"},
                "freq": {"type": "string"},
                "mode": {"type": "string"},
                "ref": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "service.FilterUpdate": {
            "type": "object",
            "properties": {
                "band": {"type": "string"},
                "mode": {"type": "string"},
                "program": {"type": "string"},
                "sort_by": {"type": "string"},
                "exclude_terminated": {"type": "boolean"}
            }
        },
        "service.CommandResult": {
            "type": "object",
            "properties": {
                "command": {"type": "string"},
                "ok": {"type": "boolean"},
                "kind": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "service.TuneReport": {
            "type": "object",
            "properties": {
                "requested_mode": {"type": "string"},
                "device_mode": {"type": "string"},
                "frequency_hz": {"type": "number"},
                "corrected": {"type": "boolean"},
                "mode": {"type": "string"},
                "vfo_hz": {"type": "number"},
                "commands": {"type": "array", "items": {"$ref": "#/definitions/service.CommandResult"}}
            }
        },
        "service.RigState": {
            "type": "object",
            "properties": {
                "transceiver": {"type": "string"},
                "mode": {"type": "string"},
                "vfo_hz": {"type": "number"},
                "modes": {"type": "array", "items": {"type": "string"}},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/service.CommandResult"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "potarig API",
	Description:      "POTA spots, flrig transceiver control and ADIF contact logging.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
