package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shoplane/shoplane-api/internal/middleware"
	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// OrderHandler handles order placement and retrieval endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /api/orders. Insufficient stock propagates through
// the generic error path; no status is set at the raise site.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Items []service.OrderItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.UserID(c), req.Items)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(201, order)
}

// GetOrderByID handles GET /api/orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"),
		middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		if errors.Is(err, utils.ErrOrderNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, order)
}

// ListOrders handles GET /api/orders, returning the caller's own orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, orders)
}
