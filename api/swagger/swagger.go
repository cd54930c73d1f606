package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Schedule Editor API",
        "description": "Weekly lesson schedule editor with conflict checks, undo history and plan reconciliation",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization"
        }
    },
    "tags": [
        {
            "name": "Schedule",
            "description": "Schedule editing"
        },
        {
            "name": "Plan",
            "description": "Weekly hour quotas"
        },
        {
            "name": "Ops",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Readiness check of database and cache",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is down"
                    }
                }
            }
        },
        "/metrics/status": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Editor metrics snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Get the schedule of a week",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Replace the template with a generated schedule",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ImportScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/drop": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Drop a dragged lesson or unscheduled card on a cell",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DropRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Applied or ignored",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "202": {
                        "description": "Confirmation required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/confirmations/{id}": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Apply a pending drop confirmation",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown confirmation",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Discard a pending drop confirmation",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Discarded"
                    },
                    "404": {
                        "description": "Unknown confirmation",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/undo": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Undo the last change of the scope",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/redo": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Redo the last undone change of the scope",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/weeks/{week}": {
            "delete": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Drop the week override so the week follows the template",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "week",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/weeks/{week}/clone": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Copy the template into the week override",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "week",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/cells": {
            "put": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Set or clear one class cell",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetCellRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/bulk": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Assign a subject and teacher to many cells of a class",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/BulkAssignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/lessons/{id}": {
            "delete": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Remove a lesson",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown lesson",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/conflicts": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "List who already occupies a slot",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "day",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "period",
                        "in": "query",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "teacher_id",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "class_id",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "exclude_class_id",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "exclude_teacher_id",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/unscheduled": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "List plan hours not placed in the week",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/reconcile": {
            "post": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Trim the schedule to the teaching plan",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/stream": {
            "get": {
                "description": "Upgrades to a websocket that receives a schedule.updated event after every saved change. Browsers may pass the token as access_token.",
                "tags": [
                    "Schedule"
                ],
                "summary": "Subscribe to schedule changes",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "access_token",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/schedule/export": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Export a week timetable for a class or teacher",
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "template",
                            "week"
                        ]
                    },
                    {
                        "name": "week",
                        "in": "query",
                        "type": "string",
                        "description": "Week key, e.g. 2025-W07"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "description": "Any date of the week (YYYY-MM-DD)"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf",
                            "xlsx"
                        ]
                    },
                    {
                        "name": "class_id",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "teacher_id",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Timetable file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/workspaces/{workspace}/plan": {
            "get": {
                "tags": [
                    "Plan"
                ],
                "summary": "List the teaching plan",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Plan"
                ],
                "summary": "Set the weekly hours of a class, subject and teacher",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpsertPlanItemRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Read-only session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Plan"
                ],
                "summary": "Remove a plan item and purge its lessons",
                "parameters": [
                    {
                        "name": "workspace",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "class_id",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "subject_id",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "teacher_id",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown plan item",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Lesson": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "class_id": {
                    "type": "string"
                },
                "subject_id": {
                    "type": "string"
                },
                "teacher_id": {
                    "type": "string"
                },
                "day": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY"
                    ]
                },
                "period": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 7
                },
                "room": {
                    "type": "string"
                },
                "kind": {
                    "type": "string",
                    "enum": [
                        "single",
                        "paired"
                    ]
                }
            }
        },
        "DragPayload": {
            "type": "object",
            "required": [
                "class_id",
                "subject_id",
                "teacher_id"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "class_id": {
                    "type": "string"
                },
                "subject_id": {
                    "type": "string"
                },
                "teacher_id": {
                    "type": "string"
                },
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "integer"
                },
                "room": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer"
                },
                "isUnscheduled": {
                    "type": "boolean"
                }
            }
        },
        "DropTarget": {
            "type": "object",
            "required": [
                "view",
                "container_id",
                "day"
            ],
            "properties": {
                "view": {
                    "type": "string",
                    "enum": [
                        "class",
                        "teacher",
                        "matrix"
                    ]
                },
                "container_id": {
                    "type": "string"
                },
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "integer"
                }
            }
        },
        "DropRequest": {
            "type": "object",
            "properties": {
                "payload": {
                    "$ref": "#/definitions/DragPayload"
                },
                "target": {
                    "$ref": "#/definitions/DropTarget"
                },
                "copy": {
                    "type": "boolean"
                }
            }
        },
        "SetCellRequest": {
            "type": "object",
            "required": [
                "class_id",
                "day"
            ],
            "properties": {
                "class_id": {
                    "type": "string"
                },
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "integer"
                },
                "subject_id": {
                    "type": "string"
                },
                "teacher_id": {
                    "type": "string"
                },
                "room": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                }
            }
        },
        "Slot": {
            "type": "object",
            "properties": {
                "day": {
                    "type": "string"
                },
                "period": {
                    "type": "integer"
                }
            }
        },
        "BulkAssignRequest": {
            "type": "object",
            "required": [
                "class_id",
                "subject_id",
                "teacher_id",
                "slots"
            ],
            "properties": {
                "class_id": {
                    "type": "string"
                },
                "subject_id": {
                    "type": "string"
                },
                "teacher_id": {
                    "type": "string"
                },
                "room": {
                    "type": "string"
                },
                "overwrite": {
                    "type": "boolean"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Slot"
                    }
                }
            }
        },
        "ImportScheduleRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "success",
                        "conflict"
                    ]
                },
                "schedule": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Lesson"
                    }
                },
                "violations": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "UpsertPlanItemRequest": {
            "type": "object",
            "required": [
                "class_id",
                "subject_id",
                "teacher_id"
            ],
            "properties": {
                "class_id": {
                    "type": "string"
                },
                "subject_id": {
                    "type": "string"
                },
                "teacher_id": {
                    "type": "string"
                },
                "hours_per_week": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
