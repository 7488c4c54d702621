package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListStores(c *gin.Context) {
	items, err := s.catalogSvc.ListStores(c.Request.Context())
	if err != nil {
		AbortWithError(c, failedTo("Failed to fetch stores.", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ListCategories(c *gin.Context) {
	items, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, failedTo("Failed to fetch categories.", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ListProducts(c *gin.Context) {
	items, err := s.catalogSvc.ListProducts(c.Request.Context())
	if err != nil {
		AbortWithError(c, failedTo("Failed to fetch products.", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ListCharges(c *gin.Context) {
	items, err := s.catalogSvc.ListCharges(c.Request.Context())
	if err != nil {
		AbortWithError(c, failedTo("Failed to fetch charges.", err))
		return
	}
	c.JSON(http.StatusOK, items)
}
