package http

import "github.com/gin-gonic/gin"

// Register mounts every handler on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Service management
	r.GET("/services", h.ListServices)
	r.POST("/services/discover", h.DiscoverServices)
	r.POST("/services/execute", h.ExecuteService)

	r.POST("/evaluate", h.Evaluate)

	// Session endpoints
	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.POST("/sessions/:id/keys", h.PressKeys)
	r.PUT("/sessions/:id/mode", h.SetSessionMode)
	r.DELETE("/sessions/:id", h.DeleteSession)

	// Conversion
	r.GET("/convert/units", h.ListUnits)
	r.GET("/convert/rates", h.GetRates)
	r.PUT("/convert/rates", h.UpdateRates)
}
