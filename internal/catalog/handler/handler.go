// Package handler exposes the catalog over HTTP with gin.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/catalog/service"
	"github.com/burgerboots/catalog/internal/media"
	"github.com/burgerboots/catalog/pkg/logger"
	"github.com/burgerboots/catalog/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Options tunes request handling.
type Options struct {
	// MaxUploadBytes caps an attached image; request bodies get a little extra room.
	MaxUploadBytes int64
	// MediaPrefix is the public path media is served under, e.g. /uploads.
	MediaPrefix string
}

type Handler struct {
	products *service.ProductService
	blogs    *service.BlogService
	media    media.Store
	opts     Options
}

func New(products *service.ProductService, blogs *service.BlogService, store media.Store, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = media.DefaultMaxBytes
	}
	if opts.MediaPrefix == "" {
		opts.MediaPrefix = "/uploads"
	}
	opts.MediaPrefix = "/" + strings.Trim(opts.MediaPrefix, "/")
	return &Handler{products: products, blogs: blogs, media: store, opts: opts}
}

// Register mounts the product, blog and media routes.
func (h *Handler) Register(r gin.IRouter) {
	p := r.Group("/api/products")
	p.GET("", h.listProducts)
	p.POST("", h.createProduct)
	p.GET("/category/:category", h.listProductsByCategory)
	p.GET("/:id", h.getProduct)
	p.PUT("/:id", h.updateProduct)
	p.PATCH("/:id", h.updateProduct)
	p.DELETE("/:id", h.deleteProduct)

	b := r.Group("/api/blogs")
	b.GET("", h.listBlogs)
	b.POST("", h.createBlog)
	b.GET("/categories", h.blogCategories)
	b.GET("/:id", h.getBlog)
	b.PUT("/:id", h.updateBlog)
	b.PATCH("/:id", h.updateBlog)
	b.DELETE("/:id", h.deleteBlog)

	r.GET(h.opts.MediaPrefix+"/*key", h.serveMedia)
}

func (h *Handler) serveMedia(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, err := h.media.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		writeError(c, "File", err)
		return
	}
	defer rc.Close()
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, media.ContentType(key), rc, nil)
}

// recordUpload counts the outcome of a request that carried a file.
func recordUpload(f *form, err error) {
	if f.file == nil {
		return
	}
	switch {
	case err == nil:
		metrics.MediaUploads.WithLabelValues("stored").Inc()
	case errors.Is(err, media.ErrUnsupportedMediaType), errors.Is(err, media.ErrPayloadTooLarge):
		metrics.MediaUploads.WithLabelValues("rejected").Inc()
	case errors.Is(err, media.ErrStorageWrite):
		metrics.MediaUploads.WithLabelValues("failed").Inc()
	}
}

// writeError maps domain errors to status codes. Anything unrecognised is logged and
// reported as a generic server error.
func writeError(c *gin.Context, entity string, err error) {
	var (
		ve *catalog.ValidationError
		mf *catalog.MissingFieldsError
		ic *catalog.InvalidCategoryError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ve.Errors})
	case errors.As(err, &mf):
		fields := make([]catalog.FieldError, 0, len(mf.Fields))
		for _, f := range mf.Fields {
			fields = append(fields, catalog.FieldError{Field: f, Message: f + " is required"})
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": requiredMessage(mf.Fields), "errors": fields})
	case errors.As(err, &ic):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category", "error": ic.Error(), "validCategories": ic.Valid})
	case errors.Is(err, errBadBody):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
	case errors.Is(err, catalog.ErrInvalidPagination):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": entity + " not found"})
	case errors.Is(err, media.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File too large", "error": err.Error()})
	case errors.Is(err, media.ErrUnsupportedMediaType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "Only jpeg, jpg, png and webp images are allowed", "error": err.Error()})
	case errors.Is(err, catalog.ErrUnavailable):
		logger.Warnw("record store unavailable", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service unavailable"})
	default:
		logger.Errorw("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// requiredMessage renders "Title, body and category are required".
func requiredMessage(fields []string) string {
	if len(fields) == 0 {
		return "Missing required fields"
	}
	words := append([]string(nil), fields...)
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	if len(words) == 1 {
		return words[0] + " is required"
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1] + " are required"
}
