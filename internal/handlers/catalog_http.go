package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dorincreciun/Server-Pizza/internal/service"
)

type CatalogHTTP struct {
	S service.CatalogService
}

func NewCatalogHTTP(s service.CatalogService) *CatalogHTTP { return &CatalogHTTP{S: s} }

func intQuery(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (h *CatalogHTTP) ListProducts(c *gin.Context) {
	page, err := h.S.ListProducts(service.ListParams{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", service.DefaultPageLimit),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) GetProduct(c *gin.Context) {
	p, err := h.S.GetProductBySlug(c.Param("slug"))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *CatalogHTTP) ListCategories(c *gin.Context) {
	cs, err := h.S.ListCategories()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CatalogHTTP) ListIngredients(c *gin.Context) {
	is, err := h.S.ListIngredients()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, is)
}
