package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/catalog/listing"
	"github.com/burgerboots/catalog/internal/catalog/service"
	"github.com/burgerboots/catalog/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const productEntity = "Product"

func (h *Handler) listProducts(c *gin.Context) {
	f := catalog.ProductFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	page, ok := h.queryProducts(c, f)
	if !ok {
		return
	}
	cats, err := h.products.Categories(c.Request.Context())
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page.Items, "pagination": page.Pagination, "categories": cats})
}

func (h *Handler) listProductsByCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	page, ok := h.queryProducts(c, catalog.ProductFilter{Category: category})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page.Items, "pagination": page.Pagination, "category": category})
}

// queryProducts runs the listing and writes the error response itself when it fails.
func (h *Handler) queryProducts(c *gin.Context, f catalog.ProductFilter) (listing.Page[catalog.Product], bool) {
	metrics.ListingQueries.WithLabelValues("products").Inc()
	page, err := h.products.List(c.Request.Context(), c.Query("page"), c.Query("limit"), f)
	if errors.Is(err, catalog.ErrInvalidPagination) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    err.Error(),
			"products":   []catalog.Product{},
			"pagination": listing.Pagination{},
		})
		return page, false
	}
	if err != nil {
		writeError(c, productEntity, err)
		return page, false
	}
	return page, true
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func productInput(f *form) service.ProductInput {
	return service.ProductInput{
		Name:        f.str("name"),
		Price:       f.number("price"),
		Quantity:    f.integer("quantity"),
		Description: f.str("description"),
		Category:    f.str("category"),
		Image:       f.file,
	}
}

func (h *Handler) createProduct(c *gin.Context) {
	f, err := readForm(c, h.opts.MaxUploadBytes, "image")
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	defer f.cleanup()
	in := productInput(f)
	if err := f.err(); err != nil {
		writeError(c, productEntity, err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), in)
	recordUpload(f, err)
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	f, err := readForm(c, h.opts.MaxUploadBytes, "image")
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	defer f.cleanup()
	in := productInput(f)
	if err := f.err(); err != nil {
		writeError(c, productEntity, err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), c.Param("id"), in)
	recordUpload(f, err)
	if err != nil {
		writeError(c, productEntity, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		writeError(c, productEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "id": id})
}
