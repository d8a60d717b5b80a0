package router

import "github.com/gin-gonic/gin"

// Module registers one feature's routes on the API group.
// Implementations live in router/modules.
type Module interface {
	Register(rg *gin.RouterGroup)
}
