// Package docs registers the swagger description of the scan service.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "description": "REST API for the netrecon scan service.",
    "title": "netrecon API",
    "license": {
      "name": "MIT",
      "url": "https://opensource.org/licenses/MIT"
    },
    "version": "1.0"
  },
  "host": "localhost:8080",
  "basePath": "/",
  "schemes": [
    "http"
  ],
  "paths": {
    "/scans": {
      "post": {
        "consumes": [
          "application/json"
        ],
        "produces": [
          "application/json"
        ],
        "summary": "Create a new scan task",
        "description": "Accepts an address/port spec, queues a scan, and returns a task ID for polling.",
        "operationId": "createScan",
        "tags": [
          "scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "description": "Scan request",
            "name": "scanRequest",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateScanRequest"
            }
          }
        ],
        "responses": {
          "202": {
            "description": "Scan task accepted",
            "schema": {
              "$ref": "#/definitions/ScanTask"
            }
          },
          "400": {
            "description": "Invalid address or port spec",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/scans/{id}": {
      "get": {
        "produces": [
          "application/json"
        ],
        "summary": "Fetch a scan task",
        "description": "Returns the task, including per-host reports once completed.",
        "operationId": "getScan",
        "tags": [
          "scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "type": "string",
            "description": "Task ID",
            "name": "id",
            "in": "path",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "Scan task",
            "schema": {
              "$ref": "#/definitions/ScanTask"
            }
          },
          "404": {
            "description": "Task not found",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    }
  },
  "securityDefinitions": {
    "ApiKeyAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "definitions": {
    "CreateScanRequest": {
      "type": "object",
      "required": [
        "address_spec"
      ],
      "properties": {
        "address_spec": {
          "type": "string",
          "example": "192.168.0.1-49"
        },
        "ports": {
          "type": "string",
          "example": "22,80,443"
        }
      }
    },
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {
          "type": "string",
          "example": "task not found"
        }
      }
    },
    "HostReport": {
      "type": "object",
      "properties": {
        "addr": {
          "type": "string",
          "example": "192.168.0.10"
        },
        "hostname": {
          "type": "string",
          "example": "printer.lan"
        },
        "mac": {
          "type": "string",
          "example": "aa:bb:cc:dd:ee:ff"
        },
        "os": {
          "type": "string",
          "example": "Linux 5.4"
        },
        "ports": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/PortService"
          }
        }
      }
    },
    "PortService": {
      "type": "object",
      "properties": {
        "port": {
          "type": "integer",
          "example": 22
        },
        "service": {
          "type": "string",
          "example": "ssh"
        }
      }
    },
    "ScanTask": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "example": "pending"
        },
        "address_spec": {
          "type": "string",
          "example": "192.168.0.0/24"
        },
        "ports": {
          "type": "string",
          "example": "1-1024"
        },
        "reports": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/HostReport"
          }
        },
        "created_at": {
          "type": "string",
          "format": "date-time"
        },
        "completed_at": {
          "type": "string",
          "format": "date-time"
        },
        "error": {
          "type": "string"
        }
      }
    }
  }
}
`

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

type swaggerDoc struct{}

func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}
