// Package api holds the Swagger documentation of the API. It is regenerated with "swag init".
package api

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
        "/": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "description": "Entrypoint for the API, listing all endpoints and how to upload a backup",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/root.Response"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Get health",
                "description": "Returns the state of the run log or, if it cannot be reached, an error",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/healthz.Response"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/version": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Version",
                "description": "Returns the version of the migrator and the backups and tables it supports",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/version.Response"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1": {
            "get": {
                "tags": [
                    "v1"
                ],
                "summary": "v1 API",
                "description": "Returns general information about the v1 API",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.Response"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "v1"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/migrations": {
            "get": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Get migrations",
                "description": "Returns all migrations, newest first",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationListResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationListResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Migrate a backup",
                "description": "Migrates a Financisto backup to Bluecoins statements and records the run",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Financisto backup",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Time zone to write dates in. Defaults to the time zone of the server",
                        "name": "timezone",
                        "in": "query"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationResponse"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/migrations/{id}": {
            "get": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Get migration",
                "description": "Returns a specific migration",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.MigrationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Delete migration",
                "description": "Deletes a migration from the run log",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
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
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/migrations/{id}/statements": {
            "get": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Get statements",
                "description": "Returns the SQL statements generated by a successful migration",
                "produces": [
                    "application/sql"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/httputil.HTTPError"
                        }
                    }
                }
            },
            "options": {
                "tags": [
                    "Migrations"
                ],
                "summary": "Allowed HTTP verbs",
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    },
    "definitions": {
        "httputil.HTTPError": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "the specified resource ID is not a valid UUID"
                }
            }
        },
        "healthz.Response": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/healthz.RunLog"
                }
            }
        },
        "healthz.RunLog": {
            "type": "object",
            "properties": {
                "failed": {
                    "description": "Number of recorded migrations that failed",
                    "type": "integer",
                    "example": 1
                },
                "migrations": {
                    "description": "Number of recorded migrations",
                    "type": "integer",
                    "example": 12
                }
            }
        },
        "root.Links": {
            "type": "object",
            "properties": {
                "docs": {
                    "description": "Swagger API documentation",
                    "type": "string",
                    "example": "https://example.com/api/docs/index.html"
                },
                "healthz": {
                    "description": "Run log health",
                    "type": "string",
                    "example": "https://example.com/api/healthz"
                },
                "metrics": {
                    "description": "Prometheus metrics",
                    "type": "string",
                    "example": "https://example.com/api/metrics"
                },
                "migrations": {
                    "description": "Run log of all migrations",
                    "type": "string",
                    "example": "https://example.com/api/v1/migrations"
                },
                "statements": {
                    "description": "SQL of a successful migration, {id} is the migration ID",
                    "type": "string",
                    "example": "https://example.com/api/v1/migrations/{id}/statements"
                },
                "v1": {
                    "description": "List endpoint for all v1 endpoints",
                    "type": "string",
                    "example": "https://example.com/api/v1"
                },
                "version": {
                    "description": "Version and supported formats",
                    "type": "string",
                    "example": "https://example.com/api/version"
                }
            }
        },
        "root.Response": {
            "type": "object",
            "properties": {
                "links": {
                    "$ref": "#/definitions/root.Links"
                },
                "upload": {
                    "description": "How to submit a backup for migration",
                    "allOf": [
                        {
                            "$ref": "#/definitions/root.Upload"
                        }
                    ]
                }
            }
        },
        "root.Upload": {
            "type": "object",
            "properties": {
                "field": {
                    "description": "Multipart form field of the backup",
                    "type": "string",
                    "example": "file"
                },
                "method": {
                    "type": "string",
                    "example": "POST"
                },
                "pattern": {
                    "description": "The file name must match this glob",
                    "type": "string",
                    "example": "*.backup"
                },
                "timezone": {
                    "description": "Query parameter for the IANA time zone of the dates",
                    "type": "string",
                    "example": "timezone"
                },
                "url": {
                    "type": "string",
                    "example": "https://example.com/api/v1/migrations"
                }
            }
        },
        "version.Backup": {
            "type": "object",
            "properties": {
                "entities": {
                    "description": "Migrated entities, all others are skipped",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "currency",
                        "account"
                    ]
                },
                "package": {
                    "type": "string",
                    "example": "ru.orangesoftware.financisto"
                }
            }
        },
        "version.Object": {
            "type": "object",
            "properties": {
                "backup": {
                    "description": "Backups that can be migrated",
                    "allOf": [
                        {
                            "$ref": "#/definitions/version.Backup"
                        }
                    ]
                },
                "tables": {
                    "description": "Bluecoins tables the statements write to",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "ACCOUNTSTABLE",
                        "ITEMTABLE"
                    ]
                },
                "version": {
                    "description": "Version of financisto2bluecoins",
                    "type": "string",
                    "example": "1.1.0"
                }
            }
        },
        "version.Response": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/version.Object"
                }
            }
        },
        "v1.Links": {
            "type": "object",
            "properties": {
                "migrations": {
                    "type": "string",
                    "example": "https://example.com/api/v1/migrations"
                }
            }
        },
        "v1.Response": {
            "type": "object",
            "properties": {
                "links": {
                    "$ref": "#/definitions/v1.Links"
                }
            }
        },
        "v1.MigrationResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/models.Migration"
                },
                "error": {
                    "type": "string",
                    "example": "could not parse backup: not a valid Financisto backup"
                }
            }
        },
        "v1.MigrationListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Migration"
                    }
                },
                "error": {
                    "type": "string",
                    "example": "an error occurred on the server during your request"
                }
            }
        },
        "models.MigrationStatus": {
            "type": "string",
            "enum": [
                "SUCCESS",
                "FAILED"
            ]
        },
        "models.Migration": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "createdAt": {
                    "type": "string",
                    "example": "2024-06-01T12:00:00.000000Z"
                },
                "deletedAt": {
                    "type": "string",
                    "example": "2024-06-02T21:01:05.058161Z"
                },
                "updatedAt": {
                    "type": "string",
                    "example": "2024-06-01T12:00:00.000000Z"
                },
                "filename": {
                    "type": "string",
                    "example": "20240601_120000_000.backup"
                },
                "checksum": {
                    "type": "string",
                    "example": "dbac4a4ba50e42b6e04b43c2c9b3619e3668dc0a8caf050b584bdafaebee1787"
                },
                "timezone": {
                    "type": "string",
                    "example": "Asia/Taipei"
                },
                "status": {
                    "$ref": "#/definitions/models.MigrationStatus"
                },
                "error": {
                    "type": "string",
                    "example": "could not parse backup: not a valid Financisto backup"
                },
                "backupVersion": {
                    "type": "string",
                    "example": "1.7.1"
                },
                "statements": {
                    "type": "integer",
                    "example": 2483
                },
                "accounts": {
                    "type": "integer",
                    "example": 12
                },
                "parentCategories": {
                    "type": "integer",
                    "example": 14
                },
                "childCategories": {
                    "type": "integer",
                    "example": 87
                },
                "items": {
                    "type": "integer",
                    "example": 431
                },
                "transactions": {
                    "type": "integer",
                    "example": 1802
                },
                "collisions": {
                    "type": "integer",
                    "example": 3
                },
                "skipped": {
                    "type": "integer",
                    "example": 2
                },
                "balanceMismatches": {
                    "type": "integer",
                    "example": 0
                },
                "similarItems": {
                    "type": "integer",
                    "example": 5
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
