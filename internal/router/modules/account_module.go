package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
)

// AccountModule wires account handlers and the token gate into routes.
// Public: POST /accounts, POST /sessions (legacy POST /users, POST /auth)
// Protected: GET /sessions/me (legacy GET /auth), GET /accounts/search
type AccountModule struct {
	Handler *handlers.AccountHandler
	Gate    middleware.TokenAuthorizer
}

func NewAccountModule(h *handlers.AccountHandler, gate middleware.TokenAuthorizer) *AccountModule {
	return &AccountModule{Handler: h, Gate: gate}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/accounts", m.Handler.Register)
	rg.POST("/sessions", m.Handler.Login)
	rg.POST("/users", m.Handler.Register)
	rg.POST("/auth", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Gate))
	{
		auth.GET("/sessions/me", m.Handler.Me)
		auth.GET("/auth", m.Handler.Me)
		auth.GET("/accounts/search", m.Handler.Search)
	}
}
