// Package docs registers the OpenAPI documents of the storefront and admin services with swag.
package docs

import "github.com/swaggo/swag"

const storefrontTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}}
                }
            }
        },
        "/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Show the visitor's cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.cartResponse"}}
                }
            }
        },
        "/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add one unit of a product",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/main.addItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.cartResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Out of stock", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/cart/items/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove a product line",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.cartResponse"}}
                }
            }
        },
        "/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Place an order for the cart",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/order.Customer"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.checkoutResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Empty cart", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "cart is empty"},
                "notice": {"$ref": "#/definitions/httpx.Notice"}
            }
        },
        "httpx.Notice": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "success"},
                "text": {"type": "string", "example": "Order placed successfully!"},
                "dismiss_after_ms": {"type": "integer", "example": 4000}
            }
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "example": 10.00},
                "quantity": {"type": "integer"},
                "image": {"type": "string"}
            }
        },
        "product.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "main.addItemRequest": {
            "type": "object",
            "properties": {"product_id": {"type": "integer", "example": 1}}
        },
        "main.cartLine": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"},
                "name": {"type": "string"},
                "unit_price": {"type": "string", "example": "10.00"},
                "quantity": {"type": "integer"},
                "line_total": {"type": "string", "example": "$20.00"}
            }
        },
        "main.cartResponse": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"$ref": "#/definitions/main.cartLine"}},
                "total": {"type": "string", "example": "$20.00"},
                "can_checkout": {"type": "boolean"}
            }
        },
        "main.checkoutResponse": {
            "type": "object",
            "properties": {
                "order_id": {"type": "integer"},
                "cart": {"$ref": "#/definitions/main.cartResponse"},
                "notice": {"$ref": "#/definitions/httpx.Notice"},
                "reset_form": {"type": "boolean"}
            }
        },
        "order.Customer": {
            "type": "object",
            "required": ["name", "email", "address", "payment"],
            "properties": {
                "name": {"type": "string", "example": "Jane Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "phone": {"type": "string", "example": "+1 555 0100"},
                "address": {"type": "string", "example": "1 Market St"},
                "payment": {"type": "string", "example": "card ending 4242"}
            }
        }
    }
}`

const adminTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log in and start an admin session",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/main.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.sessionResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "End the admin session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.sessionResponse"}}
                }
            }
        },
        "/admin/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Restore the admin session from its cookie",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.sessionResponse"}}
                }
            }
        },
        "/admin/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"type": "string", "in": "formData", "name": "name", "required": true},
                    {"type": "string", "in": "formData", "name": "description"},
                    {"type": "string", "in": "formData", "name": "price", "required": true},
                    {"type": "integer", "in": "formData", "name": "quantity", "required": true},
                    {"type": "file", "in": "formData", "name": "image"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.productResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/admin/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Fetch a product with its edit form pre-filled",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.editResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Replace a product's fields",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"type": "string", "in": "formData", "name": "name", "required": true},
                    {"type": "string", "in": "formData", "name": "description"},
                    {"type": "string", "in": "formData", "name": "price", "required": true},
                    {"type": "integer", "in": "formData", "name": "quantity", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.productResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"type": "boolean", "in": "query", "name": "confirm", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.productResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "login required"},
                "notice": {"$ref": "#/definitions/httpx.Notice"}
            }
        },
        "httpx.Notice": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "success"},
                "text": {"type": "string", "example": "Product added successfully!"},
                "dismiss_after_ms": {"type": "integer", "example": 3000}
            }
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "example": 15.50},
                "quantity": {"type": "integer"},
                "image": {"type": "string"}
            }
        },
        "product.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "main.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "example": "admin"},
                "password": {"type": "string"}
            }
        },
        "main.sessionResponse": {
            "type": "object",
            "properties": {
                "logged_in": {"type": "boolean"},
                "username": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "product.Form": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Steak"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "10.00"},
                "quantity": {"type": "integer", "example": 5}
            }
        },
        "main.editResponse": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/product.Product"},
                "form": {"$ref": "#/definitions/product.Form"}
            }
        },
        "main.productResponse": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/product.Product"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}},
                "notice": {"$ref": "#/definitions/httpx.Notice"},
                "reset_form": {"type": "boolean"},
                "scroll_to_top": {"type": "boolean"}
            }
        }
    }
}`

// StorefrontInfo holds exported Swagger Info for the storefront service.
var StorefrontInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Butchery storefront",
	Description:      "Product catalog, cart and checkout.",
	InfoInstanceName: "storefront",
	SwaggerTemplate:  storefrontTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// AdminInfo holds exported Swagger Info for the admin service.
var AdminInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Butchery admin",
	Description:      "Admin session and product management.",
	InfoInstanceName: "admin",
	SwaggerTemplate:  adminTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(StorefrontInfo.InstanceName(), StorefrontInfo)
	swag.Register(AdminInfo.InstanceName(), AdminInfo)
}
