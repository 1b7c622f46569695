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

const blogEntity = "Blog"

func (h *Handler) listBlogs(c *gin.Context) {
	metrics.ListingQueries.WithLabelValues("blogs").Inc()
	f := catalog.BlogFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	page, err := h.blogs.List(c.Request.Context(), c.Query("page"), c.Query("limit"), f)
	if errors.Is(err, catalog.ErrInvalidPagination) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    err.Error(),
			"blogs":      []catalog.Blog{},
			"pagination": listing.Pagination{},
		})
		return
	}
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": page.Items, "pagination": page.Pagination})
}

func (h *Handler) blogCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.blogs.Categories()})
}

func (h *Handler) getBlog(c *gin.Context) {
	b, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func blogInput(f *form) service.BlogInput {
	return service.BlogInput{
		Title:    f.str("title"),
		Body:     f.str("body"),
		Author:   f.str("author"),
		Tags:     f.list("tags"),
		Category: f.str("category"),
		Featured: f.flag("featured"),
		Image:    f.file,
	}
}

func (h *Handler) createBlog(c *gin.Context) {
	f, err := readForm(c, h.opts.MaxUploadBytes, "image")
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	defer f.cleanup()
	in := blogInput(f)
	if err := f.err(); err != nil {
		writeError(c, blogEntity, err)
		return
	}
	b, err := h.blogs.Create(c.Request.Context(), in)
	recordUpload(f, err)
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) updateBlog(c *gin.Context) {
	f, err := readForm(c, h.opts.MaxUploadBytes, "image")
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	defer f.cleanup()
	in := blogInput(f)
	if err := f.err(); err != nil {
		writeError(c, blogEntity, err)
		return
	}
	b, err := h.blogs.Update(c.Request.Context(), c.Param("id"), in)
	recordUpload(f, err)
	if err != nil {
		writeError(c, blogEntity, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) deleteBlog(c *gin.Context) {
	id := c.Param("id")
	if err := h.blogs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, blogEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully", "id": id})
}
