package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/auth"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/config"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/handlers"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// Tokens outlive accounts: make RequireAuth confirm the user still exists
	// and is active on every request.
	auth.SetUserVerifier(func(_ context.Context, uid uuid.UUID) bool {
		var count int64
		err := db.Model(&models.User{}).
			Where("id = ? AND is_active = ?", uid, true).
			Limit(1).Count(&count).Error
		return err == nil && count > 0
	})

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	ah := handlers.NewAuthHandler(db, cfg.TokenTTL)
	mux.HandleFunc("POST /api/v1/auth/setup-admin", ah.SetupAdmin)
	mux.HandleFunc("POST /api/v1/auth/login/access-token", ah.Login)

	clients := store.NewClientStore(db)
	orders := store.NewOrderStore(db)
	configs := store.NewConfigStore(db)
	dashboards := store.NewDashboardStore(db)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	ch := handlers.NewClientHandler(clients)
	mux.Handle("GET /api/v1/clients", protected(ch.List))
	mux.Handle("POST /api/v1/clients", protected(ch.Create))
	mux.Handle("GET /api/v1/clients/{id}", protected(ch.Get))
	mux.Handle("PUT /api/v1/clients/{id}", protected(ch.Update))
	mux.Handle("DELETE /api/v1/clients/{id}", protected(ch.Delete))

	oh := handlers.NewOrderHandler(orders, clients, configs)
	mux.Handle("GET /api/v1/orders", protected(oh.List))
	mux.Handle("POST /api/v1/orders", protected(oh.Create))
	mux.Handle("PATCH /api/v1/orders/{id}/status", protected(oh.UpdateStatus))
	mux.Handle("DELETE /api/v1/orders/{id}", protected(oh.Delete))
	mux.Handle("GET /api/v1/orders/{id}/pdf", protected(oh.PDF))

	sh := handlers.NewSettingsHandler(configs)
	mux.Handle("GET /api/v1/settings", protected(sh.Get))
	mux.Handle("PUT /api/v1/settings", protected(sh.Update))

	dh := handlers.NewDashboardHandler(dashboards)
	mux.Handle("GET /api/v1/dashboard/metrics", protected(dh.Metrics))
	mux.Handle("GET /api/v1/dashboard/best-clients", protected(dh.BestClients))

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
