// Package export writes the purchase store to other formats for ad-hoc querying
package export

import (
	"context"
	"os"
	"path/filepath"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
	"grocer/internal/platform/store"
	pstrings "grocer/internal/platform/strings"
	importdomain "grocer/internal/services/groceryimport/domain"
)

// Counts reports what an export wrote
type Counts struct {
	Items     int `json:"items"`
	Purchases int `json:"purchases"`
}

var schema = []string{
	`DROP TABLE IF EXISTS purchases`,
	`DROP TABLE IF EXISTS items`,
	`CREATE TABLE items (
		id             TEXT PRIMARY KEY,
		canonical_name TEXT NOT NULL,
		category       TEXT NOT NULL DEFAULT '',
		brand          TEXT,
		unit_size      TEXT,
		asin           TEXT
	)`,
	`CREATE TABLE purchases (
		item_id        TEXT NOT NULL REFERENCES items(id),
		order_id       TEXT NOT NULL,
		date           TEXT NOT NULL,
		quantity       INTEGER NOT NULL,
		price_per_unit REAL NOT NULL,
		raw_title      TEXT NOT NULL
	)`,
	`CREATE INDEX idx_items_category ON items(category)`,
	`CREATE INDEX idx_purchases_item ON purchases(item_id)`,
	`CREATE INDEX idx_purchases_date ON purchases(date)`,
}

// WriteSQLite recreates the items and purchases tables in the SQLite file at path.
// Blank brand, unit size and asin are stored as NULL.
// The whole export is one transaction, so a failure leaves the previous tables intact
func WriteSQLite(ctx context.Context, path string, items []importdomain.Item) (Counts, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Counts{}, perr.Wrapf(err, perr.ErrorCodeStorageIO, "create %s", dir)
		}
	}

	log := logger.C(ctx)
	db, err := store.OpenSQLite(ctx, path, store.WithTracer(store.Tracer(log)))
	if err != nil {
		return Counts{}, err
	}
	defer db.Close()

	var c Counts
	err = db.Tx(ctx, func(q store.RowQuerier) error {
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		for _, it := range items {
			if _, err := q.Exec(ctx,
				`INSERT INTO items (id, canonical_name, category, brand, unit_size, asin) VALUES (?, ?, ?, ?, ?, ?)`,
				it.ID, it.CanonicalName, it.Category, pstrings.SQLNull(it.Brand), pstrings.SQLNull(it.UnitSize), pstrings.SQLNull(it.ASIN)); err != nil {
				return err
			}
			for _, p := range it.Purchases {
				if _, err := q.Exec(ctx,
					`INSERT INTO purchases (item_id, order_id, date, quantity, price_per_unit, raw_title) VALUES (?, ?, ?, ?, ?, ?)`,
					it.ID, p.OrderID, p.Date.String(), p.Quantity, p.PricePerUnit, p.RawTitle); err != nil {
					return err
				}
			}
		}

		// report what the file holds, not what we meant to write
		var err error
		if c.Items, err = store.Scalar[int](ctx, q, `SELECT COUNT(*) FROM items`); err != nil {
			return err
		}
		c.Purchases, err = store.Scalar[int](ctx, q, `SELECT COUNT(*) FROM purchases`)
		return err
	})
	if err != nil {
		return Counts{}, perr.Wrapf(err, perr.ErrorCodeStorageIO, "export to %s", path)
	}
	log.Info().Str("path", path).Int("items", c.Items).Int("purchases", c.Purchases).Msg("export: done")
	return c, nil
}
