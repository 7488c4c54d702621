package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/pos/internal/order/domain"
	orderservice "github.com/smallbiznis/pos/internal/order/service"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, orderservice.DecodeError(err))
		return
	}
	if storeID := strings.TrimSpace(req.StoreID); storeID != "" {
		c.Set("store_id", storeID)
	}

	order, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, failedTo("Failed to create order.", err))
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	order, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, failedTo("Failed to fetch order.", err))
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) GetOrderReceipt(c *gin.Context) {
	out, err := s.receiptSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, failedTo("Failed to render receipt.", err))
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out.Body)
}
