package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and contributions into the database.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 1; i <= 5; i++ {
		creator := fmt.Sprintf("creator-%d", i)
		title := fmt.Sprintf("Campaign %d", i)
		description := fmt.Sprintf("Demo funding round number %d", i)
		goal := int64((r.Intn(9) + 1) * 10000) // 100.00 .. 900.00 units
		start := time.Now().UTC()
		end := start.Add(time.Duration(r.Intn(72)+1) * time.Hour)
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, creator, title, description, goal, pledged, start_at, end_at, claimed)
VALUES ($1,$2,$3,$4,$5,0,$6,$7,false) ON CONFLICT DO NOTHING`,
			i, creator, title, description, goal, start, end)
		if err != nil {
			return err
		}

		// a few contributions per campaign, aggregate kept consistent
		var pledged int64
		for j := r.Intn(4) + 1; j > 0; j-- {
			account := fmt.Sprintf("backer-%d", r.Intn(20)+1)
			amount := int64((r.Intn(50) + 1) * 100)
			_, err = db.Exec(ctx, `INSERT INTO contributions (campaign_id, account, amount)
VALUES ($1,$2,$3) ON CONFLICT (campaign_id, account) DO UPDATE
SET amount = contributions.amount + EXCLUDED.amount`, i, account, amount)
			if err != nil {
				return err
			}
			pledged += amount
		}
		_, err = db.Exec(ctx, `UPDATE campaigns SET pledged = pledged + $1 WHERE id = $2`, pledged, i)
		if err != nil {
			return err
		}
	}

	// keep the id sequence ahead of the explicit demo ids
	_, err := db.Exec(ctx, `SELECT setval(pg_get_serial_sequence('campaigns','id'),
    (SELECT COALESCE(MAX(id),1) FROM campaigns))`)
	return err
}
