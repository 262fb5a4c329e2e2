package catalog

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Status is the display status of a chain.
type Status int

const (
	// StatusLive chains are minting now.
	StatusLive Status = iota
	// StatusNext chains are announced and coming up.
	StatusNext
	// StatusMystery chains are unrevealed; the community votes on them.
	StatusMystery
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusNext:
		return "next"
	case StatusMystery:
		return "mystery"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus parses the case-insensitive status names used in catalog files.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live":
		return StatusLive, nil
	case "next", "upcoming":
		return StatusNext, nil
	case "mystery", "vote":
		return StatusMystery, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// ChainEntity is one visualizable network. Values are copied out of the
// catalog, so holders can never mutate catalog state.
type ChainEntity struct {
	// Index is the position in catalog order, assigned at ingestion.
	Index  int
	Name   string
	Symbol string
	Color  colorful.Color
	// IconRef is an opaque handle resolved by the asset manager.
	IconRef string
	Status  Status
	// DepositAmount is the USD-equivalent amount raised, never negative.
	DepositAmount float64
	// NavigationTarget is handed to the host router when the entity is clicked.
	NavigationTarget string
	// Description is shown on the tooltip card; empty means a status default.
	Description string
}
