// Package docs registra el spec OpenAPI del servicio para swaggo.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/api/animals": {
            "get": {
                "description": "Devuelve todos los registros que cumplen el preset. Preset desconocido o vacío = All.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales por tipo de rescate",
                "parameters": [
                    {"enum": ["All", "water_rescue", "mountain_wilderness_rescue", "disaster_individual_tracking"], "type": "string", "description": "Preset de rescate; desconocido o vacío = All", "name": "rescueType", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "503": {"description": "record store no disponible", "schema": {"$ref": "#/definitions/animals.errorResponse"}}
                }
            }
        },
        "/api/breeds/pie": {
            "get": {
                "description": "Agrupa por raza. mode=top devuelve topN + Other; mode=all devuelve todas.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Conteo por raza",
                "parameters": [
                    {"enum": ["top", "all"], "type": "string", "description": "top (default) o all", "name": "mode", "in": "query"},
                    {"type": "integer", "description": "default 10", "name": "topN", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animals.BreedCount"}}},
                    "400": {"description": "topN inválido", "schema": {"$ref": "#/definitions/animals.errorResponse"}},
                    "503": {"description": "record store no disponible", "schema": {"$ref": "#/definitions/animals.errorResponse"}}
                }
            }
        },
        "/api/predict/adoption": {
            "post": {
                "description": "Valida el payload y lo reenvía sin transformar al servicio ML. La respuesta del upstream se devuelve tal cual.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Predecir probabilidad de adopción",
                "parameters": [
                    {"description": "Features del animal", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/predictions.Request"}}
                ],
                "responses": {
                    "200": {"description": "respuesta del servicio ML", "schema": {"type": "object"}},
                    "400": {"description": "primer campo inválido", "schema": {"$ref": "#/definitions/predictions.validationErrorResponse"}},
                    "429": {"description": "rate limit", "schema": {"$ref": "#/definitions/predictions.upstreamErrorResponse"}},
                    "502": {"description": "servicio ML no disponible", "schema": {"$ref": "#/definitions/predictions.upstreamErrorResponse"}}
                }
            }
        },
        "/api/inventory": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Listar items",
                "parameters": [{"type": "string", "description": "Término de búsqueda", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/inventory.itemResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Crear item",
                "parameters": [{"description": "Item", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.createItemRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/inventory.itemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/inventory.errorResponse"}},
                    "409": {"description": "SKU o UPC duplicado", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            }
        },
        "/api/inventory/zero-stock": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Items agotados",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/inventory.itemResponse"}}}}
            }
        },
        "/api/inventory/{sku}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Obtener item por SKU",
                "parameters": [{"type": "string", "description": "SKU", "name": "sku", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.itemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "tags": ["inventory"],
                "summary": "Eliminar item por SKU",
                "parameters": [{"type": "string", "description": "SKU", "name": "sku", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            }
        },
        "/api/inventory/{sku}/quantity": {
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Fijar cantidad",
                "parameters": [
                    {"type": "string", "description": "SKU", "name": "sku", "in": "path", "required": true},
                    {"description": "Cantidad", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.setQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.itemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            }
        },
        "/api/inventory/{sku}/adjust": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Ajustar cantidad",
                "parameters": [
                    {"type": "string", "description": "SKU", "name": "sku", "in": "path", "required": true},
                    {"description": "Delta", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.adjustQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.itemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/inventory.errorResponse"}}
                }
            }
        },
        "/api/accounts": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Listar usernames",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Registrar cuenta",
                "parameters": [{"description": "Cuenta", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accounts.accountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accounts.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/accounts.errorResponse"}}
                }
            }
        },
        "/api/accounts/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Validar credenciales",
                "parameters": [{"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.accountResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accounts.errorResponse"}}
                }
            }
        },
        "/api/accounts/{username}/password": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["accounts"],
                "summary": "Cambiar password",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "Passwords", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.changePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accounts.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "200 si el record store responde; el estado del servicio ML es informativo.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.healthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/router.healthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "accounts.accountResponse": {"type": "object", "properties": {"employee_name": {"type": "string"}, "id": {"type": "string"}, "username": {"type": "string"}}},
        "accounts.changePasswordRequest": {"type": "object", "properties": {"new_password": {"type": "string"}, "old_password": {"type": "string"}}},
        "accounts.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "accounts.loginRequest": {"type": "object", "properties": {"password": {"type": "string"}, "username": {"type": "string"}}},
        "accounts.registerRequest": {"type": "object", "properties": {"employee_name": {"type": "string"}, "password": {"type": "string"}, "username": {"type": "string"}}},
        "animals.BreedCount": {"type": "object", "properties": {"breed": {"type": "string"}, "count": {"type": "integer"}}},
        "animals.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "inventory.adjustQuantityRequest": {"type": "object", "properties": {"delta": {"type": "integer"}}},
        "inventory.createItemRequest": {"type": "object", "properties": {"name": {"type": "string"}, "quantity": {"type": "integer"}, "short_description": {"type": "string"}, "sku": {"type": "string"}, "upc": {"type": "string"}}},
        "inventory.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "inventory.itemResponse": {"type": "object", "properties": {"created_at": {"type": "string"}, "id": {"type": "string"}, "name": {"type": "string"}, "quantity": {"type": "integer"}, "short_description": {"type": "string"}, "sku": {"type": "string"}, "upc": {"type": "string"}, "updated_at": {"type": "string"}}},
        "inventory.setQuantityRequest": {"type": "object", "properties": {"quantity": {"type": "integer"}}},
        "predictions.Request": {"type": "object", "properties": {"age_weeks": {"type": "number"}, "animal_type": {"type": "string"}, "outcome_month": {"type": "integer"}, "primary_breed": {"type": "string"}, "sex_upon_outcome": {"type": "string"}}},
        "predictions.upstreamErrorResponse": {"type": "object", "properties": {"detail": {"type": "string"}, "error": {"type": "string"}}},
        "predictions.validationErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "field": {"type": "string"}}},
        "router.healthResponse": {"type": "object", "properties": {"ml": {"type": "string"}, "status": {"type": "string"}, "store": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shelter Dashboard API",
	Description:      "Consulta de outcomes del shelter, agregación por raza, proxy de predicción de adopción e inventario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
