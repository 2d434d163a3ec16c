package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundpool/internal/core/domain"
)

// CampaignStore implements port.CampaignStore using pgxpool for
// PostgreSQL. Mutations that touch both the contribution entry and the
// campaign aggregate run in a serializable transaction with the campaign
// row locked, so the pledged total can never drift from the entries.
type CampaignStore struct {
	pool *pgxpool.Pool
}

// NewCampaignStore returns a new store instance.
func NewCampaignStore(pool *pgxpool.Pool) *CampaignStore {
	return &CampaignStore{pool: pool}
}

// CreateCampaign inserts the campaign and returns the generated id.
func (s *CampaignStore) CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `INSERT INTO campaigns
    (creator, title, description, goal, pledged, start_at, end_at, claimed)
VALUES ($1,$2,$3,$4,0,$5,$6,false) RETURNING id`,
		string(c.Creator), c.Title, c.Description, c.Goal, c.StartAt, c.EndAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Campaign returns a campaign by id, or nil when it does not exist.
func (s *CampaignStore) Campaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, creator, title, description, goal, pledged, start_at, end_at, claimed
FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c       domain.Campaign
		creator string
	)
	err := row.Scan(&c.ID, &creator, &c.Title, &c.Description, &c.Goal, &c.Pledged, &c.StartAt, &c.EndAt, &c.Claimed)
	c.Creator = domain.Account(creator)
	return c, err
}

// Campaigns returns all campaigns ordered by id.
func (s *CampaignStore) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, creator, title, description, goal, pledged, start_at, end_at, claimed
FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// Contribution returns the held amount; unknown ids and accounts read as 0.
func (s *CampaignStore) Contribution(ctx context.Context, id int64, account domain.Account) (int64, error) {
	var amount int64
	err := s.pool.QueryRow(ctx, `SELECT amount FROM contributions WHERE campaign_id = $1 AND account = $2`,
		id, string(account)).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// AddContribution upserts the contribution entry and adjusts the
// campaign's pledged total in one transaction.
func (s *CampaignStore) AddContribution(ctx context.Context, id int64, account domain.Account, delta int64) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()
	// lock the campaign row
	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM campaigns WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrCampaignNotFound
		return err
	}
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO contributions (campaign_id, account, amount) VALUES ($1,$2,$3)
ON CONFLICT (campaign_id, account) DO UPDATE SET amount = contributions.amount + EXCLUDED.amount`,
		id, string(account), delta)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns SET pledged = pledged + $1 WHERE id = $2`, delta, id)
	return err
}

// SetClaimed sets the claimed flag and overwrites the pledged total.
func (s *CampaignStore) SetClaimed(ctx context.Context, id int64, claimed bool, pledged int64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE campaigns SET claimed = $1, pledged = $2 WHERE id = $3`,
		claimed, pledged, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}
