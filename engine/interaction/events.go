package interaction

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
)

// NavigationKind distinguishes the two click outcomes.
type NavigationKind int

const (
	// NavigateViewMintDetail opens the mint page of a live or upcoming chain.
	NavigateViewMintDetail NavigationKind = iota
	// NavigateRequestVote opens the vote flow for an unrevealed chain.
	NavigateRequestVote
)

func (k NavigationKind) String() string {
	if k == NavigateRequestVote {
		return "request_vote"
	}
	return "view_mint_detail"
}

// NavigateEvent is handed to the host router after a click on an entity.
type NavigateEvent struct {
	Kind   NavigationKind
	Entity catalog.ChainEntity
	// Target is the entity's navigation target; empty for vote requests.
	Target string
}

// HoverSelection is the at-most-one hovered entity plus the last cursor position.
type HoverSelection struct {
	Active bool
	Entity catalog.ChainEntity
	Cursor math32.Vector2
}

// Target is one pickable entity volume in world space.
type Target struct {
	EntityIndex int
	Bounds      math32.Box3
	// Visible false excludes the target from picking entirely.
	Visible bool
}

// EntitySource resolves entity indices to catalog records.
type EntitySource interface {
	ByIndex(i int) (catalog.ChainEntity, bool)
}

// Highlighter applies and removes the hover look on an entity's nodes.
type Highlighter interface {
	SetHovered(entityIndex int, hovered bool)
}
