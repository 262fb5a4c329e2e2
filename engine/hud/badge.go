package hud

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
)

// Badge is the status pill shown on the card.
type Badge struct {
	Label string
	Color colorful.Color
}

var (
	badgeLive    = Badge{Label: "LIVE", Color: mustHex("#2ecc71")}
	badgeNext    = Badge{Label: "NEXT UP", Color: mustHex("#f5b041")}
	badgeMystery = Badge{Label: "VOTE TO REVEAL", Color: mustHex("#9b59b6")}
)

// BadgeFor returns the badge for a status.
func BadgeFor(s catalog.Status) Badge {
	switch s {
	case catalog.StatusNext:
		return badgeNext
	case catalog.StatusMystery:
		return badgeMystery
	default:
		return badgeLive
	}
}

// DefaultDescription is used when an entity carries no description of its own.
func DefaultDescription(s catalog.Status) string {
	switch s {
	case catalog.StatusNext:
		return "Minting opens soon. Click to preview the mint."
	case catalog.StatusMystery:
		return "An unrevealed chain. Click to vote on what comes next."
	default:
		return "Minting now. Click to deposit and mint."
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
