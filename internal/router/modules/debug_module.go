package modules

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DebugModule serves the health probe and, when enabled, expvar counters.
type DebugModule struct {
	MetricsEnabled bool
}

func NewDebugModule(metrics bool) *DebugModule { return &DebugModule{MetricsEnabled: metrics} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m.MetricsEnabled {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
