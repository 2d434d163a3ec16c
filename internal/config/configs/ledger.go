package configs

import "time"

// Ledger configures the funding-pool core. Store selects the backing
// campaign store and may be "memory" (default) or "postgres". When
// "postgres" is selected the Postgres section must point at a reachable
// database.
type Ledger struct {
	Store string `env:"STORE" envDefault:"memory"`
	// MinDuration is the shortest campaign window accepted at creation.
	MinDuration time.Duration `env:"MIN_DURATION" envDefault:"1h"`
}
