package http

import "github.com/gin-gonic/gin"

// Register mounts the custom-rules contract on a router group.
// writeMiddleware (rate limiting) is applied to mutating verbs only.
func Register(rg gin.IRouter, h *Handler, writeMiddleware ...gin.HandlerFunc) {
	rg.GET("/custom-rules", h.list)
	rg.POST("/custom-rules", withWrites(writeMiddleware, h.create)...)
	rg.PUT("/custom-rules", withWrites(writeMiddleware, h.update)...)
	rg.DELETE("/custom-rules", withWrites(writeMiddleware, h.delete)...)
}

func withWrites(mw []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mw)+1)
	chain = append(chain, mw...)
	return append(chain, final)
}
