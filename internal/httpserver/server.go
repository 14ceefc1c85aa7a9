// Package httpserver собирает HTTP-маршрутизатор сервиса.
// Три уровня доступа: публичные маршруты, маршруты с токеном
// и админские/серверные группы поверх проверки роли.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/config"
	"serotonyl.ru/oasis-backend/internal/features/adminquery"
	"serotonyl.ru/oasis-backend/internal/features/auth"
	"serotonyl.ru/oasis-backend/internal/features/avatar"
	"serotonyl.ru/oasis-backend/internal/features/economy"
	"serotonyl.ru/oasis-backend/internal/features/friends"
	"serotonyl.ru/oasis-backend/internal/features/plans"
	"serotonyl.ru/oasis-backend/internal/features/ugc"
	"serotonyl.ru/oasis-backend/internal/features/users"
	"serotonyl.ru/oasis-backend/internal/features/world"
	"serotonyl.ru/oasis-backend/internal/httpserver/middleware"
)

// Handlers — все обработчики сервиса, собранные композиционным корнем.
type Handlers struct {
	Auth       *auth.Handler
	Users      *users.Handler
	Plans      *plans.Handler
	World      *world.Handler
	Economy    *economy.Handler
	UGC        *ugc.Handler
	Avatar     *avatar.Handler
	Friends    *friends.Handler
	AdminQuery *adminquery.Handler
}

// NewRouter собирает маршрутизатор с middleware и группами доступа.
// loginLimiter ограничивает только эндпоинты входа/регистрации.
func NewRouter(cfg *config.Config, tokens *auth.TokenManager, h *Handlers, loginLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	authenticate := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRoles(users.RoleAdmin)
	serverOrAdmin := middleware.RequireRoles(users.RoleAdmin, users.RoleServer)

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты.
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/Auth/register", h.Auth.Register)
			r.Post("/Auth/login", h.Auth.Login)
			r.Post("/AdminGeneric/loginadmin", h.Auth.LoginAdmin)
		})
		r.Get("/UGC/catalog", h.UGC.Catalog)
		r.Get("/World/config/{worldId}", h.World.GetConfig)
		r.Get("/Plans", h.Plans.List)
		r.Get("/Plans/{planId}", h.Plans.Get)
		r.Get("/Currency/types", h.Economy.ListCurrencies)
		r.Get("/Currency/types/{currencyId}", h.Economy.GetCurrency)

		// Маршруты с токеном.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/User/me", h.Users.Me)

			r.Post("/World/join/{worldId}", h.World.Join)
			r.Post("/World/leave/{instanceId}", h.World.Leave)

			r.Get("/Currency/balance", h.Economy.MyBalances)
			r.Post("/Currency/purchase", h.Economy.Purchase)

			r.Post("/UGC/upload", h.UGC.Upload)
			r.Post("/UGC/acquire/{assetId}", h.UGC.Acquire)

			r.Post("/Avatar/save", h.Avatar.Save)
			r.Get("/Avatar/load/{configId}", h.Avatar.Load)
			r.Get("/Avatar/list", h.Avatar.List)

			r.Post("/Friends/send/{targetUserId}", h.Friends.Send)
			r.Post("/Friends/accept/{requesterId}", h.Friends.Accept)
			r.Get("/Friends/list", h.Friends.List)
			r.Delete("/Friends/remove/{friendId}", h.Friends.Remove)

			// Игровые серверы (и администраторы) управляют инстанциями.
			r.Group(func(r chi.Router) {
				r.Use(serverOrAdmin)
				r.Post("/World/register", h.World.Register)
				r.Put("/World/update/{instanceId}", h.World.Heartbeat)
				r.Delete("/World/deregister/{instanceId}", h.World.Deregister)
			})

			// Админ-панель.
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/AdminGeneric/paginate", h.AdminQuery.Paginate)
				r.Get("/AdminGeneric/balances", h.AdminQuery.Balances)
				r.Get("/AdminGeneric/users", h.AdminQuery.Users)

				r.Put("/User/{userId}/status", h.Users.SetStatus)
				r.Put("/User/{userId}/role", h.Users.SetRole)
				r.Delete("/User/{userId}", h.Users.Delete)

				r.Post("/Plans", h.Plans.Create)
				r.Put("/Plans/{planId}", h.Plans.Update)
				r.Delete("/Plans/{planId}", h.Plans.Delete)

				r.Post("/Currency/types", h.Economy.CreateCurrency)
				r.Put("/Currency/types/{currencyId}", h.Economy.UpdateCurrency)
				r.Delete("/Currency/types/{currencyId}", h.Economy.DeleteCurrency)
				r.Put("/Currency/balances/{userId}", h.Economy.SetBalance)
				r.Delete("/Currency/balances/{userId}/{currencyId}", h.Economy.DeleteBalance)

				r.Get("/UGC/moderation/pending", h.UGC.Pending)
				r.Post("/UGC/moderation/approve/{assetId}", h.UGC.Approve)
				r.Delete("/UGC/{assetId}", h.UGC.Delete)
			})
		})
	})

	return r
}

// NewServer создаёт http.Server с таймаутами из конфигурации.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
}
