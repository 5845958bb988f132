package http

import "github.com/gin-gonic/gin"

// Register attaches the DRC routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/reports", h.listReports)
	rg.GET("/reports/:id", h.getReport)
}
