package router

import (
	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/container"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/cache"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/queue"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/router/modules"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

type AccountModuleDeps struct {
	Repo    repository.AccountRepository
	Service *application.Service
	Handler *handlers.AccountHandler
}

// NewAccountRepository picks the store: Postgres when a pool is present, memory otherwise.
func NewAccountRepository() repository.AccountRepository {
	if pool := container.GetPGPool(); pool != nil {
		return pginfra.NewAccountRepository(pool)
	}
	return memory.NewAccountRepository()
}

// BuildAccountService wires the account service from container singletons.
func BuildAccountService(repo repository.AccountRepository) *application.Service {
	cfg := container.GetConfig()
	return application.NewService(
		repo,
		container.GetHasher(),
		container.GetJWT(),
		helpers.GravatarURL,
		cache.NewAccountCache(container.GetRedis(), cfg.AccountCacheTTL),
		search.NewAccountIndex(container.GetES(), cfg.ESAccountsIndex),
		queue.NewWelcomeNotifier(container.GetRabbitPub(), cfg),
		container.GetLogger(),
	)
}

func buildAccountDeps() AccountModuleDeps {
	repo := NewAccountRepository()
	service := BuildAccountService(repo)
	handler := handlers.NewAccountHandler(service, container.GetLogger())
	return AccountModuleDeps{Repo: repo, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry.
// This function should be called once during application startup after the container is filled.
func InitModules(r *Registry) {
	accountDeps := buildAccountDeps()
	r.Add(
		modules.NewAccountModule(accountDeps.Handler, container.GetJWT()),
		modules.NewDebugModule(container.GetConfig().DebugMetricsEnabled),
	)
}
