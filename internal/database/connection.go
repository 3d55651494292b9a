// Package database is the thin pgx layer over the hosted backend holding
// products and app settings. Orders never touch it: order state lives in
// memory for the process lifetime.
package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

// Connect returns the process-wide connection pool, creating it on first
// call. Exactly one pool exists per process; it lives for the process
// lifetime and needs no teardown in a short-lived kiosk deployment.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		p, err := pgxpool.New(ctx, url)
		if err != nil {
			poolErr = fmt.Errorf("create pool: %w", err)
			return
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			poolErr = fmt.Errorf("ping: %w", err)
			return
		}
		pool = p
	})
	return pool, poolErr
}
