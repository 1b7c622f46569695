package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the catalog API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>burgerboots-catalog Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "burgerboots-catalog", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Pagination": { "type": "object", "properties": { "currentPage": {"type":"integer"}, "totalPages": {"type":"integer"}, "totalItems": {"type":"integer"}, "hasNext": {"type":"boolean"}, "hasPrev": {"type":"boolean"} } },
      "Product": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string","maxLength":100}, "price": {"type":"number","minimum":0,"maximum":10000}, "quantity": {"type":"integer","minimum":0}, "description": {"type":"string","maxLength":500}, "category": {"type":"string","maxLength":50}, "image": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Blog": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string","maxLength":200}, "body": {"type":"string"}, "author": {"type":"string","maxLength":100}, "tags": {"type":"array","items":{"type":"string","maxLength":50}}, "category": {"type":"string"}, "image": {"type":"string"}, "featured": {"type":"boolean"}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Error": { "type": "object", "properties": { "message": {"type":"string"}, "error": {"type":"string"}, "errors": {"type":"array","items":{"type":"object","properties":{"field":{"type":"string"},"message":{"type":"string"}}}}, "validCategories": {"type":"array","items":{"type":"string"}} } }
    }
  },
  "paths": {
    "/api/products": {
      "get": { "summary": "List products", "parameters": [ {"name":"page","in":"query"}, {"name":"limit","in":"query"}, {"name":"search","in":"query","description":"exact name, case-insensitive"}, {"name":"category","in":"query"} ], "responses": { "200": { "description": "products, pagination and categories" }, "400": { "description": "invalid pagination" } } },
      "post": { "summary": "Create product (multipart with optional image, or JSON)", "responses": { "201": { "description": "created product" }, "400": { "description": "missing fields or validation" }, "413": { "description": "image too large" }, "415": { "description": "image type not allowed" } } }
    },
    "/api/products/category/{category}": {
      "get": { "summary": "List products in a category", "responses": { "200": { "description": "products, pagination and category" } } }
    },
    "/api/products/{id}": {
      "get": { "summary": "Get product", "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update product (partial merge)", "responses": { "200": { "description": "updated product" }, "400": { "description": "validation" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update product (partial merge)", "responses": { "200": { "description": "updated product" } } },
      "delete": { "summary": "Delete product; the image is kept", "responses": { "200": { "description": "message and id" }, "404": { "description": "not found" } } }
    },
    "/api/blogs": {
      "get": { "summary": "List blogs", "parameters": [ {"name":"page","in":"query"}, {"name":"limit","in":"query"}, {"name":"category","in":"query"}, {"name":"search","in":"query","description":"substring of title, body or tags"} ], "responses": { "200": { "description": "blogs and pagination" }, "400": { "description": "invalid pagination" } } },
      "post": { "summary": "Create blog post", "responses": { "201": { "description": "created blog" }, "400": { "description": "missing fields, invalid category or validation" } } }
    },
    "/api/blogs/categories": {
      "get": { "summary": "Valid blog categories", "responses": { "200": { "description": "categories" } } }
    },
    "/api/blogs/{id}": {
      "get": { "summary": "Get blog", "responses": { "200": { "description": "blog" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update blog (partial merge)", "responses": { "200": { "description": "updated blog" } } },
      "patch": { "summary": "Update blog (partial merge)", "responses": { "200": { "description": "updated blog" } } },
      "delete": { "summary": "Delete blog", "responses": { "200": { "description": "message and id" } } }
    },
    "/uploads/{key}": { "get": { "summary": "Stored media", "responses": { "200": { "description": "image bytes" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness and database status", "responses": { "200": { "description": "status, database, timestamp" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
