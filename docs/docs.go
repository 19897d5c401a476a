// Package docs registers the OpenAPI document served by the swagger UI at
// /swagger. It is maintained by hand alongside the swag annotations on the
// handlers; keep both in step when a route changes.
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
        "/v1/discover": {
            "get": {
                "description": "Returns the fixed, illustrative discover entries.",
                "produces": ["application/json"],
                "tags": ["Content"],
                "summary": "Discover feed",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.DiscoveryItem"}}}
                }
            }
        },
        "/v1/messages": {
            "post": {
                "description": "Appends a user message and streams the answer as Server-Sent Events named start, chunk, sources, title and done.\nBlank content is ignored with 204.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Messages"],
                "summary": "Send a message",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StreamEvent"}},
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/render": {
            "post": {
                "description": "Splits text into line blocks with bold and link spans.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Content"],
                "summary": "Render markdown",
                "parameters": [
                    {"description": "Text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RenderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RenderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/suggestions": {
            "get": {
                "description": "Returns the suggested queries shown on the home view.",
                "produces": ["application/json"],
                "tags": ["Content"],
                "summary": "Home suggestions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/v1/threads": {
            "get": {
                "description": "Returns every thread, newest first, and the id of the active thread.",
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "List threads",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ThreadList"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates an empty thread and makes it the active one.",
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Start a new thread",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.ThreadView"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/threads/active": {
            "delete": {
                "description": "Clears the thread selection; the next message starts a new thread.",
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Return to the home view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}}
                }
            }
        },
        "/v1/threads/{threadID}": {
            "get": {
                "description": "Returns a thread with its messages. Model messages include rendered markdown blocks.",
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Get a thread",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "threadID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ThreadView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Delete a thread",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "threadID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/threads/{threadID}/active": {
            "put": {
                "description": "Makes the thread the target of messages sent without a thread id.",
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Open a thread",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "threadID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/threads/{threadID}/title": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Threads"],
                "summary": "Rename a thread",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "threadID", "in": "path", "required": true},
                    {"description": "New title", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.UpdateTitleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/voice": {
            "get": {
                "description": "Reports whether speech recognition and synthesis are available, and the synthesis voices.",
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Voice capabilities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/voice.Capabilities"}}
                }
            }
        },
        "/v1/voice/listen": {
            "post": {
                "description": "Records a single utterance and returns its transcript. Blocks until recognition ends; closing the request stops it.",
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Recognise one utterance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TranscriptResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/voice/speak": {
            "post": {
                "description": "Speaks the given text, or the content of a stored message, replacing any utterance in progress.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Read text aloud",
                "parameters": [
                    {"description": "Text or message reference", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SpeakRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.MessageView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "model"]},
                "content": {"type": "string"},
                "sources": {"type": "array", "items": {"$ref": "#/definitions/model.Source"}},
                "timestamp": {"type": "integer"},
                "blocks": {"type": "array", "items": {"$ref": "#/definitions/markdown.Block"}}
            }
        },
        "api.RenderRequest": {
            "type": "object",
            "properties": {"text": {"type": "string", "example": "**Bold** and [a link](https://example.com)"}}
        },
        "api.RenderResponse": {
            "type": "object",
            "properties": {"blocks": {"type": "array", "items": {"$ref": "#/definitions/markdown.Block"}}}
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "api.ThreadView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "integer"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/api.MessageView"}}
            }
        },
        "api.TranscriptResponse": {
            "type": "object",
            "properties": {"transcript": {"type": "string"}}
        },
        "api.UpdateTitleRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {"title": {"type": "string", "maxLength": 100, "minLength": 1, "example": "Jazz Origins"}}
        },
        "markdown.Block": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["blank", "heading", "list_item", "ordered_item", "paragraph"]},
                "level": {"type": "integer"},
                "number": {"type": "string"},
                "spans": {"type": "array", "items": {"$ref": "#/definitions/markdown.Span"}}
            }
        },
        "markdown.Span": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["text", "bold", "link"]},
                "text": {"type": "string"},
                "href": {"type": "string"}
            }
        },
        "model.DiscoveryItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "snippet": {"type": "string"},
                "author": {"type": "string"},
                "likes": {"type": "integer"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "model"]},
                "content": {"type": "string"},
                "sources": {"type": "array", "items": {"$ref": "#/definitions/model.Source"}},
                "timestamp": {"type": "integer"}
            }
        },
        "model.Source": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "uri": {"type": "string"},
                "favicon": {"type": "string"}
            }
        },
        "model.StreamEvent": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["start", "chunk", "sources", "title", "done"]},
                "thread_id": {"type": "string"},
                "message_id": {"type": "string"},
                "user_message_id": {"type": "string"},
                "content": {"type": "string"},
                "sources": {"type": "array", "items": {"$ref": "#/definitions/model.Source"}},
                "title": {"type": "string"}
            }
        },
        "model.Thread": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/model.Message"}},
                "updatedAt": {"type": "integer"}
            }
        },
        "service.SendMessageRequest": {
            "type": "object",
            "properties": {
                "thread_id": {"type": "string", "example": "0190f5d2-8c4e-7b7a-9d7e-2f1c3a4b5c6d"},
                "content": {"type": "string", "example": "History of jazz"}
            }
        },
        "service.SpeakRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "Jazz originated in New Orleans."},
                "thread_id": {"type": "string"},
                "message_id": {"type": "string"}
            }
        },
        "service.ThreadList": {
            "type": "object",
            "properties": {
                "threads": {"type": "array", "items": {"$ref": "#/definitions/model.Thread"}},
                "active_thread_id": {"type": "string"}
            }
        },
        "voice.Capabilities": {
            "type": "object",
            "properties": {
                "recognition": {"type": "boolean"},
                "synthesis": {"type": "boolean"},
                "locale": {"type": "string"},
                "voices": {"type": "array", "items": {"$ref": "#/definitions/voice.Voice"}}
            }
        },
        "voice.Voice": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "locale": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Kenotrix API",
	Description:      "Conversational search backend: grounded streaming answers, thread storage and voice.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
