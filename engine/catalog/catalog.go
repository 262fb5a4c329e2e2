// Package catalog holds the read-only, ordered list of chains the plaza
// visualizes, plus the YAML loader and the file watcher that re-ingests it.
package catalog

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

type catalogImpl struct {
	mu *sync.RWMutex

	entities []ChainEntity
	version  uint64

	log zerolog.Logger
}

// Catalog is the read-only collection of chain entities.
// Reads return copies; the only way to change the data is Reingest, which
// validates the whole set and swaps it in at once.
type Catalog interface {
	// Len returns the number of entities.
	Len() int

	// All returns every entity in catalog order.
	//
	// Returns:
	//   - []ChainEntity: a copy of the entities
	All() []ChainEntity

	// ByIndex returns the entity at catalog position i.
	//
	// Parameters:
	//   - i: catalog index
	//
	// Returns:
	//   - ChainEntity: the entity
	//   - bool: false if i is out of range
	ByIndex(i int) (ChainEntity, bool)

	// SortedByDeposit returns the entities ordered by deposit amount.
	// The sort is stable so entities with equal deposits keep catalog order.
	// The order is computed from the current data on every call.
	//
	// Parameters:
	//   - ascending: true for smallest first
	//
	// Returns:
	//   - []ChainEntity: the sorted copy
	SortedByDeposit(ascending bool) []ChainEntity

	// MaxDeposit returns the largest deposit among entities whose status
	// exposes deposit-driven visuals (everything but Mystery).
	MaxDeposit() float64

	// Version increases every time Reingest succeeds.
	Version() uint64

	// Reingest validates entities and replaces the catalog contents.
	// On error the previous contents are kept.
	//
	// Parameters:
	//   - entities: the new full set, in catalog order
	//
	// Returns:
	//   - error: wraps common.ErrInvalidEntity naming the offending entity
	Reingest(entities []ChainEntity) error
}

var _ Catalog = &catalogImpl{}

// NewCatalog validates and ingests the initial entity set.
//
// Parameters:
//   - entities: the initial entities in catalog order
//   - options: functional options
//
// Returns:
//   - Catalog: the catalog
//   - error: wraps common.ErrInvalidEntity if any entity fails validation
func NewCatalog(entities []ChainEntity, options ...CatalogBuilderOption) (Catalog, error) {
	c := &catalogImpl{
		mu:  &sync.RWMutex{},
		log: zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	if err := c.Reingest(entities); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks a single entity.
//
// Returns:
//   - error: wraps common.ErrInvalidEntity describing the failed field
func Validate(e ChainEntity) error {
	switch {
	case e.Name == "":
		return fmt.Errorf("entity at index %d: empty name: %w", e.Index, common.ErrInvalidEntity)
	case math.IsNaN(e.DepositAmount) || math.IsInf(e.DepositAmount, 0):
		return fmt.Errorf("entity %q: deposit amount %v is not a finite number: %w", e.Name, e.DepositAmount, common.ErrInvalidEntity)
	case e.DepositAmount < 0:
		return fmt.Errorf("entity %q: deposit amount %v is negative: %w", e.Name, e.DepositAmount, common.ErrInvalidEntity)
	case e.Status < StatusLive || e.Status > StatusMystery:
		return fmt.Errorf("entity %q: %v: %w", e.Name, e.Status, common.ErrInvalidEntity)
	}
	return nil
}

func (c *catalogImpl) Reingest(entities []ChainEntity) error {
	next := make([]ChainEntity, len(entities))
	for i, e := range entities {
		e.Index = i
		if err := Validate(e); err != nil {
			c.log.Error().Err(err).Msg("catalog ingestion rejected")
			return fmt.Errorf("catalog ingestion: %w", err)
		}
		next[i] = e
	}

	c.mu.Lock()
	c.entities = next
	c.version++
	v := c.version
	c.mu.Unlock()

	c.log.Info().Int("entities", len(next)).Uint64("version", v).Msg("catalog ingested")
	return nil
}

func (c *catalogImpl) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities)
}

func (c *catalogImpl) All() []ChainEntity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entities)
}

func (c *catalogImpl) ByIndex(i int) (ChainEntity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.entities) {
		return ChainEntity{}, false
	}
	return c.entities[i], true
}

func (c *catalogImpl) SortedByDeposit(ascending bool) []ChainEntity {
	out := c.All()
	slices.SortStableFunc(out, func(a, b ChainEntity) int {
		var d int
		switch {
		case a.DepositAmount < b.DepositAmount:
			d = -1
		case a.DepositAmount > b.DepositAmount:
			d = 1
		}
		if !ascending {
			d = -d
		}
		return d
	})
	return out
}

func (c *catalogImpl) MaxDeposit() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var m float64
	for _, e := range c.entities {
		if e.Status != StatusMystery {
			m = max(m, e.DepositAmount)
		}
	}
	return m
}

func (c *catalogImpl) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
