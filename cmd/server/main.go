package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/matchabar/api/internal/catalog"
	"github.com/matchabar/api/internal/config"
	"github.com/matchabar/api/internal/database"
	"github.com/matchabar/api/internal/order"
	"github.com/matchabar/api/internal/router"
	"github.com/matchabar/api/internal/session"
	"github.com/matchabar/api/internal/ws"
)

func main() {
	cfg := config.Load()

	// The kiosk must come up even when the backend is unreachable: start from
	// the packaged snapshot and replace it with live data when available.
	cat := catalog.Default()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if pool, err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
		log.Printf("WARNING: backend unavailable, using packaged catalog: %v", err)
	} else {
		products, settings, err := database.LoadCatalog(ctx, database.New(pool))
		if err != nil {
			log.Printf("WARNING: catalog fetch failed, using packaged catalog: %v", err)
		} else {
			cat.Replace(products, settings)
			log.Printf("Loaded %d products from backend", len(products))
		}
	}

	orders := order.NewStore()
	if cfg.DemoOrders {
		order.SeedDemo(orders, cat, time.Now())
		log.Println("Seeded demo orders")
	}

	hub := ws.NewHub()
	go hub.Run()

	sess := session.New(cat, orders)
	r := router.New(cat, sess, orders, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
