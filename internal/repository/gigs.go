package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"gigtix/internal/model"
)

const gigCacheTTL = 10 * time.Minute

// ListGigs returns the catalogue ordered by date. The list is read straight
// from Postgres; only single-gig lookups go through the cache.
func (r *TicketRepo) ListGigs(ctx context.Context) ([]model.Gig, error) {
	query := `SELECT slug, band_name, city, venue, date, price FROM gigs ORDER BY date`
	rows, err := r.dbPool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query gigs: %w", err)
	}
	defer rows.Close()

	var gigs []model.Gig
	for rows.Next() {
		var g model.Gig
		if err := rows.Scan(&g.Slug, &g.BandName, &g.City, &g.Venue, &g.Date, &g.Price); err != nil {
			return nil, fmt.Errorf("scan gig: %w", err)
		}
		gigs = append(gigs, g)
	}
	return gigs, rows.Err()
}

// GetGig looks a gig up by slug, trying Redis first and warming the cache
// from Postgres on a miss.
func (r *TicketRepo) GetGig(ctx context.Context, slug string) (*model.Gig, error) {
	cacheKey := "gig:" + slug

	cached, err := r.redisClient.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var g model.Gig
		if err := json.Unmarshal(cached, &g); err == nil {
			return &g, nil
		}
		// Corrupt cache entry; fall through to the database.
		slog.Warn("dropping unreadable gig cache entry", "slug", slug)
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("gig cache read: %w", err)
	}

	g, err := r.fetchGig(ctx, slug)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(g); err == nil {
		if err := r.redisClient.Set(ctx, cacheKey, data, gigCacheTTL).Err(); err != nil {
			slog.Warn("failed to cache gig", "slug", slug, "error", err)
		}
	}

	return g, nil
}

func (r *TicketRepo) fetchGig(ctx context.Context, slug string) (*model.Gig, error) {
	query := `SELECT slug, band_name, city, venue, date, price FROM gigs WHERE slug = $1`

	var g model.Gig
	err := r.dbPool.QueryRow(ctx, query, slug).Scan(&g.Slug, &g.BandName, &g.City, &g.Venue, &g.Date, &g.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("query gig %q: %w", slug, err)
	}
	return &g, nil
}
