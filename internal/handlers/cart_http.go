package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dorincreciun/Server-Pizza/internal/service"
)

type CartHTTP struct {
	S service.CartService
}

func NewCartHTTP(s service.CartService) *CartHTTP { return &CartHTTP{S: s} }

func (h *CartHTTP) Get(c *gin.Context) {
	cart, err := h.S.Get(userID(c))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addItemReq struct {
	ProductID         uint     `json:"productId" binding:"required"`
	VariantID         *uint    `json:"variantId"`
	CustomIngredients []string `json:"customIngredients"`
	Quantity          int      `json:"quantity" binding:"required,min=1"`
}

func (h *CartHTTP) AddItem(c *gin.Context) {
	var req addItemReq
	if !BindJSON(c, &req) {
		return
	}
	cart, err := h.S.AddItem(userID(c), service.AddItemInput{
		ProductID:         req.ProductID,
		VariantID:         req.VariantID,
		CustomIngredients: req.CustomIngredients,
		Quantity:          req.Quantity,
	})
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func itemIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		Error(c, service.NewValidation("Invalid item id", map[string][]string{
			"id": {"must be a positive integer"},
		}))
		return 0, false
	}
	return uint(id), true
}

func (h *CartHTTP) UpdateItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if !BindJSON(c, &req) {
		return
	}
	cart, err := h.S.UpdateQuantity(userID(c), id, req.Quantity)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	if err := h.S.RemoveItem(userID(c), id); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CartHTTP) Clear(c *gin.Context) {
	if err := h.S.Clear(userID(c)); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
