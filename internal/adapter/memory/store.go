package memory

import (
	"context"
	"sync"

	"fundpool/internal/core/domain"
)

// Store keeps the campaign table and the contribution table in process
// memory. Contributions are a composite-key table (campaign id,
// account) -> held amount; entries appear on first pledge and read as 0
// when absent. Campaigns are never deleted.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	campaigns     map[int64]domain.Campaign
	contributions map[int64]map[domain.Account]int64
}

// NewStore returns an empty store. The first allocated campaign id is 1.
func NewStore() *Store {
	return &Store{
		campaigns:     make(map[int64]domain.Campaign),
		contributions: make(map[int64]map[domain.Account]int64),
	}
}

// CreateCampaign stores c under the next id and returns it.
func (s *Store) CreateCampaign(_ context.Context, c domain.Campaign) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.campaigns[c.ID] = c
	s.contributions[c.ID] = make(map[domain.Account]int64)
	return c.ID, nil
}

// Campaign returns a copy of the campaign, or nil when it does not exist.
func (s *Store) Campaign(_ context.Context, id int64) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Campaigns returns all campaigns ordered by id.
func (s *Store) Campaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for id := int64(1); id <= s.nextID; id++ {
		if c, ok := s.campaigns[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Contribution returns the held amount, 0 for unknown ids and accounts.
func (s *Store) Contribution(_ context.Context, id int64, account domain.Account) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contributions[id][account], nil
}

// AddContribution adjusts the contributor's entry and the campaign's
// pledged total by delta in one step.
func (s *Store) AddContribution(_ context.Context, id int64, account domain.Account, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	s.contributions[id][account] += delta
	c.Pledged += delta
	s.campaigns[id] = c
	return nil
}

// SetClaimed sets the claimed flag and overwrites the pledged total,
// leaving individual contribution entries untouched.
func (s *Store) SetClaimed(_ context.Context, id int64, claimed bool, pledged int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	c.Claimed = claimed
	c.Pledged = pledged
	s.campaigns[id] = c
	return nil
}
