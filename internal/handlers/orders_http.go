package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dorincreciun/Server-Pizza/internal/service"
)

type OrdersHTTP struct {
	S service.CheckoutService
}

func NewOrdersHTTP(s service.CheckoutService) *OrdersHTTP { return &OrdersHTTP{S: s} }

type createOrderReq struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required,min=5,max=300"`
}

func (h *OrdersHTTP) Create(c *gin.Context) {
	var req createOrderReq
	if !BindJSON(c, &req) {
		return
	}
	order, err := h.S.Checkout(userID(c), req.DeliveryAddress)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *OrdersHTTP) ListMy(c *gin.Context) {
	page, err := h.S.ListOrders(userID(c), intQuery(c, "page", 1), intQuery(c, "limit", service.DefaultPageLimit))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Recommendations is a stub: the ranking signal accumulates in purchase
// stats, but no engine sits on top of it.
func (h *OrdersHTTP) Recommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": []any{}})
}
