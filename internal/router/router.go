package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/handler"
	"github.com/matchabar/api/internal/order"
	"github.com/matchabar/api/internal/session"
	"github.com/matchabar/api/internal/ws"
)

// New creates a Chi router with the kiosk and admin routes wired up.
func New(cat *catalog.Catalog, sess *session.Session, orders *order.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",         // kiosk dev server
			"https://kiosk.matchabar.mx",    // kiosk frontend
			"https://admin.matchabar.mx",    // admin dashboard
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Live order feed for the admin dashboard
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	// Kiosk session
	sessionHandler := handler.NewSessionHandler(sess, hub)
	r.Route("/session", sessionHandler.RegisterRoutes)

	// Admin: orders
	orderHandler := handler.NewOrderHandler(orders, hub)
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Admin: catalog & inventory
	productHandler := handler.NewProductHandler(cat)
	r.Route("/products", productHandler.RegisterRoutes)

	// Admin: settings
	settingsHandler := handler.NewSettingsHandler(cat)
	r.Route("/settings", settingsHandler.RegisterRoutes)

	return r
}
