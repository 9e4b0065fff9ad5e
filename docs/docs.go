// Package docs registra la especificación OpenAPI de la API con swag.
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
        "/api/scheduling/solve": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Optimiza el plan recibido y responde con la mejor solución encontrada. El id del trabajo viaja en la cabecera X-Job-Id.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Resolver un plan (bloqueante)",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleDTO"
                        },
                        "description": "Líneas y órdenes"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/solve-async": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Resolver un plan (asíncrono)",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleDTO"
                        },
                        "description": "Líneas y órdenes"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/dto.SolveAsyncResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/status/{jobId}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "SOLVING_SCHEDULED (en espera), SOLVING_ACTIVE (optimizando) o NOT_SOLVING (terminado).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Estado de un trabajo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Id del trabajo",
                        "name": "jobId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StatusResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/stop/{jobId}": {
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Pide detener la optimización; la mejor solución hasta el momento queda disponible en /status.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Terminación anticipada",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Id del trabajo",
                        "name": "jobId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StopResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/score": {
            "post": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Puntuar un plan sin optimizar",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleDTO"
                        },
                        "description": "Plan con secuencias por línea"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ScoreAnalysisResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/report/{jobId}": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Plan de producción en PDF",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Id del trabajo",
                        "name": "jobId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/solutions": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Soluciones persistidas",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Máximo de resultados (1-100, por defecto 20)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Desplazamiento",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SolutionListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scheduling/solutions/{jobId}": {
            "delete": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "tags": [
                    "scheduling"
                ],
                "summary": "Eliminar solución guardada",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Id del trabajo",
                        "name": "jobId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ProductionLineDTO": {
            "type": "object",
            "required": [
                "id",
                "lineCode",
                "availableFrom"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "example": "LINE_1"
                },
                "name": {
                    "type": "string",
                    "example": "Línea 1"
                },
                "lineCode": {
                    "type": "string",
                    "example": "LINE_1"
                },
                "availableFrom": {
                    "type": "string",
                    "example": "2026-03-01T08:00:00"
                },
                "orders": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.OrderDTO": {
            "type": "object",
            "required": [
                "id",
                "productCode",
                "compatibleLines",
                "productionDurationHours"
            ],
            "properties": {
                "id": {
                    "type": "string",
                    "example": "DEMO_001"
                },
                "productCode": {
                    "type": "string",
                    "example": "T10ESY"
                },
                "formulaCode": {
                    "type": "string",
                    "example": "F001"
                },
                "thickness": {
                    "type": "number",
                    "example": 5
                },
                "quantity": {
                    "type": "integer"
                },
                "currentInventory": {
                    "type": "number",
                    "example": 300
                },
                "monthlyShipment": {
                    "type": "number",
                    "example": 30
                },
                "expectedStartTime": {
                    "type": "string",
                    "example": "2026-03-01T08:00:00"
                },
                "compatibleLines": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "productionDurationHours": {
                    "type": "number",
                    "example": 22
                },
                "assignedLine": {
                    "type": "string"
                },
                "sequenceIndex": {
                    "type": "integer"
                },
                "previousOrder": {
                    "type": "string"
                },
                "startTime": {
                    "type": "string"
                },
                "endTime": {
                    "type": "string"
                }
            }
        },
        "dto.ScheduleDTO": {
            "type": "object",
            "required": [
                "productionLines",
                "orders"
            ],
            "properties": {
                "productionLines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ProductionLineDTO"
                    }
                },
                "orders": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.OrderDTO"
                    }
                },
                "score": {
                    "type": "string",
                    "example": "0hard/-3medium/-120soft"
                }
            }
        },
        "dto.SolveAsyncResponse": {
            "type": "object",
            "properties": {
                "jobId": {
                    "type": "string"
                }
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {
                "jobId": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "SOLVING_ACTIVE"
                },
                "solution": {
                    "$ref": "#/definitions/dto.ScheduleDTO"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.StopResponse": {
            "type": "object",
            "properties": {
                "jobId": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "dto.ConstraintMatchDTO": {
            "type": "object",
            "properties": {
                "orderId": {
                    "type": "string"
                },
                "score": {
                    "type": "string"
                }
            }
        },
        "dto.ConstraintSummaryDTO": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "tier": {
                    "type": "string"
                },
                "score": {
                    "type": "string"
                },
                "matchCount": {
                    "type": "integer"
                },
                "matches": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ConstraintMatchDTO"
                    }
                }
            }
        },
        "dto.ScoreAnalysisResponse": {
            "type": "object",
            "properties": {
                "score": {
                    "type": "string"
                },
                "feasible": {
                    "type": "boolean"
                },
                "constraints": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ConstraintSummaryDTO"
                    }
                }
            }
        },
        "dto.PageResponse": {
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "dto.SolutionSummaryDTO": {
            "type": "object",
            "properties": {
                "jobId": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "NOT_SOLVING"
                },
                "score": {
                    "type": "string",
                    "example": "0hard/-3medium/-120soft"
                },
                "error": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.SolutionListResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SolutionSummaryDTO"
                    }
                },
                "page": {
                    "$ref": "#/definitions/dto.PageResponse"
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo información de la API exportada para uso externo.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Planificador API",
	Description:      "Planificación de órdenes de bobinas madre en líneas de producción.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
