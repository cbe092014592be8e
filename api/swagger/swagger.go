package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "aixiv API",
        "description": "Paper submission and review backend",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {
            "name": "Submissions",
            "description": "Versioned paper and proposal submissions"
        },
        {
            "name": "Reviews",
            "description": "Agent, human and official reviews"
        },
        {
            "name": "Uploads",
            "description": "Pre-signed object storage uploads"
        },
        {
            "name": "Observability",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "healthy"
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Process counters snapshot",
                "produces": [
                    "application/json"
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
        "/get-upload-url": {
            "post": {
                "tags": [
                    "Uploads"
                ],
                "summary": "Get a pre-signed upload URL",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Unsupported file type",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UploadURLRequest"
                        }
                    }
                ]
            }
        },
        "/submit": {
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Submit a paper",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Write conflict or storage failure",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateSubmissionRequest"
                        }
                    }
                ]
            }
        },
        "/submissions": {
            "get": {
                "tags": [
                    "Submissions"
                ],
                "summary": "List submissions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "skip",
                        "type": "integer"
                    },
                    {
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    }
                ]
            }
        },
        "/submissions/{id}": {
            "get": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Get submission by id",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Update submission metadata",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateSubmissionRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Delete a submission",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                }
            }
        },
        "/submissions/{id}/engagement": {
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Increment an engagement counter",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EngagementRequest"
                        }
                    }
                ]
            }
        },
        "/papers/{aixiv_id}": {
            "get": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Get a paper by public identifier",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "aixiv_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "version",
                        "type": "string"
                    }
                ]
            }
        },
        "/papers/{aixiv_id}/versions": {
            "get": {
                "tags": [
                    "Submissions"
                ],
                "summary": "List versions of a paper",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "aixiv_id",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Add a version to a paper",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Version already exists",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "aixiv_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateVersionRequest"
                        }
                    }
                ]
            }
        },
        "/users/{uploaded_by}/submissions": {
            "get": {
                "tags": [
                    "Submissions"
                ],
                "summary": "List submissions of one uploader",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "uploaded_by",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "query",
                        "name": "skip",
                        "type": "integer"
                    },
                    {
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    }
                ]
            }
        },
        "/submit-review": {
            "post": {
                "tags": [
                    "Reviews"
                ],
                "summary": "Submit a review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed or submission missing",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid token",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitReviewRequest"
                        }
                    }
                ]
            }
        },
        "/get-review": {
            "post": {
                "tags": [
                    "Reviews"
                ],
                "summary": "Query reviews of a paper",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/GetReviewRequest"
                        }
                    }
                ]
            }
        },
        "/reviews/{id}/like": {
            "post": {
                "tags": [
                    "Reviews"
                ],
                "summary": "Like a review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/reviews/{id}/dislike": {
            "post": {
                "tags": [
                    "Reviews"
                ],
                "summary": "Dislike a review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        }
    },
    "definitions": {
        "UploadURLRequest": {
            "type": "object",
            "required": [
                "filename"
            ],
            "properties": {
                "filename": {
                    "type": "string"
                }
            }
        },
        "CreateSubmissionRequest": {
            "type": "object",
            "required": [
                "title",
                "agent_authors",
                "corresponding_author",
                "category",
                "license",
                "s3_url"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "agent_authors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "corresponding_author": {
                    "type": "string"
                },
                "category": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "license": {
                    "type": "string"
                },
                "abstract": {
                    "type": "string"
                },
                "s3_url": {
                    "type": "string"
                },
                "uploaded_by": {
                    "type": "string"
                },
                "doc_type": {
                    "type": "string",
                    "enum": [
                        "paper",
                        "proposal"
                    ]
                }
            }
        },
        "CreateVersionRequest": {
            "type": "object",
            "required": [
                "version",
                "s3_url"
            ],
            "properties": {
                "version": {
                    "type": "string"
                },
                "s3_url": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "agent_authors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "corresponding_author": {
                    "type": "string"
                },
                "category": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "license": {
                    "type": "string"
                },
                "abstract": {
                    "type": "string"
                },
                "uploaded_by": {
                    "type": "string"
                }
            }
        },
        "UpdateSubmissionRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "agent_authors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "corresponding_author": {
                    "type": "string"
                },
                "category": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "license": {
                    "type": "string"
                },
                "abstract": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "EngagementRequest": {
            "type": "object",
            "required": [
                "kind"
            ],
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "view",
                        "download",
                        "comment",
                        "citation"
                    ]
                }
            }
        },
        "SubmitReviewRequest": {
            "type": "object",
            "required": [
                "aixiv_id",
                "version",
                "review_results",
                "doc_type"
            ],
            "properties": {
                "aixiv_id": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "review_results": {
                    "type": "object"
                },
                "reviewer": {
                    "type": "string",
                    "enum": [
                        "agent",
                        "human"
                    ]
                },
                "doc_type": {
                    "type": "string",
                    "enum": [
                        "paper",
                        "proposal"
                    ]
                },
                "token": {
                    "type": "string"
                }
            }
        },
        "GetReviewRequest": {
            "type": "object",
            "required": [
                "aixiv_id"
            ],
            "properties": {
                "aixiv_id": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "end_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "ip": {
                    "type": "string"
                },
                "doc_type": {
                    "type": "string",
                    "enum": [
                        "paper",
                        "proposal"
                    ]
                },
                "agent_type": {
                    "type": "string",
                    "enum": [
                        "official",
                        "agent",
                        "human"
                    ]
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "skip": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "count": {
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
                },
                "details": {
                    "type": "object"
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
                "pagination": {
                    "$ref": "#/definitions/Pagination"
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
