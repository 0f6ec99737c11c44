// Package docs holds the OpenAPI description of the vizd HTTP API. Regenerate
// with `swag init -g cmd/vizd/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "vizd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/compile": {
            "post": {
                "description": "Compiles, loads and registers a model. Streams progress as NDJSON (one types.ProgressEvent per line, the last of type \"result\"). With ?stream=0 the final types.CompileResponse is returned as JSON.",
                "consumes": ["application/json"],
                "produces": ["application/x-ndjson"],
                "tags": ["compile"],
                "summary": "Compile model",
                "parameters": [
                    {
                        "description": "Compile request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.CompileRequest"}
                    },
                    {
                        "type": "string",
                        "description": "0 disables streaming",
                        "name": "stream",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ProgressEvent"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/models": {
            "get": {
                "description": "Built-in and dynamic models with their lifecycle state.",
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List models",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        },
        "/models/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Get model",
                "parameters": [
                    {"type": "string", "description": "Model name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Model"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/models/{name}/unload": {
            "post": {
                "description": "Unmaps a dynamic model. Refused while instances are alive.",
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Unload model",
                "parameters": [
                    {"type": "string", "description": "Model name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.UnloadResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/toolchain": {
            "get": {
                "description": "Resolves the compiler the next compile would use.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Toolchain",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ToolchainStatus"}}
                }
            }
        }
    },
    "definitions": {
        "types.CompileRequest": {
            "type": "object",
            "properties": {
                "flags": {"type": "array", "items": {"type": "string"}},
                "include_paths": {"type": "array", "items": {"type": "string"}},
                "model": {"type": "string", "example": "ballcell"},
                "no_load": {"type": "boolean", "example": false},
                "source": {"type": "string", "example": "/srv/vizd/plugins/ballcell.cpp"},
                "standard": {"type": "string", "example": "c++20"}
            }
        },
        "types.CompileResponse": {
            "type": "object",
            "properties": {
                "command": {"type": "string"},
                "duration_ms": {"type": "integer", "example": 1532},
                "error": {"type": "string"},
                "error_kind": {"type": "string", "example": "compile_error"},
                "exit_code": {"type": "integer", "example": 0},
                "model": {"type": "string", "example": "ballcell"},
                "output_file": {"type": "string"},
                "source_file": {"type": "string"},
                "state": {"type": "string", "example": "loaded"},
                "stderr": {"type": "string"},
                "stdout": {"type": "string"},
                "success": {"type": "boolean", "example": true},
                "toolchain": {"$ref": "#/definitions/types.ToolchainStatus"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"}
            }
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "artifact_path": {"type": "string", "example": "/var/cache/vizd/artifacts/ballcell/ballcell.3.so"},
                "error": {"type": "string"},
                "generation": {"type": "integer", "example": 3},
                "name": {"type": "string", "example": "ballcell"},
                "origin": {"type": "string", "example": "dynamic"},
                "registered": {"type": "boolean", "example": true},
                "source_path": {"type": "string", "example": "/srv/vizd/plugins/ballcell.cpp"},
                "state": {"type": "string", "example": "loaded"},
                "updated_unix": {"type": "integer", "example": 1700000000}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}
            }
        },
        "types.ProgressEvent": {
            "type": "object",
            "properties": {
                "lines": {"type": "integer", "example": 10},
                "message": {"type": "string", "example": "Compiling... (10 lines)"},
                "result": {"$ref": "#/definitions/types.CompileResponse"},
                "type": {"type": "string", "example": "stdout"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "compile_failures_total": {"type": "integer", "example": 2},
                "compiles_total": {"type": "integer", "example": 12},
                "in_progress": {"type": "array", "items": {"type": "string"}},
                "last_error": {"type": "string"},
                "load_failures_total": {"type": "integer", "example": 0},
                "loads_total": {"type": "integer", "example": 10},
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}},
                "server_time_unix": {"type": "integer", "example": 1700000000},
                "toolchain": {"$ref": "#/definitions/types.ToolchainStatus"},
                "uptime_seconds": {"type": "integer", "example": 3600}
            }
        },
        "types.ToolchainStatus": {
            "type": "object",
            "properties": {
                "bundled": {"type": "boolean", "example": false},
                "compiler": {"type": "string", "example": "/usr/bin/clang++"},
                "error": {"type": "string"},
                "standard": {"type": "string", "example": "c++17"},
                "sysroot": {"type": "string"}
            }
        },
        "types.UnloadResponse": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "example": "ballcell"},
                "state": {"type": "string", "example": "not_compiled"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "vizd API",
	Description:      "HTTP API for compiling, loading and registering visualization model plugins.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
