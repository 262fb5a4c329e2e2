package interaction

import (
	"errors"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
)

const noHover = -1

type pickerImpl struct {
	mu *sync.Mutex

	entities    EntitySource
	highlighter Highlighter
	targets     []Target

	invViewProj common.Mat4
	width       float32
	height      float32

	hovered int
	cursor  math32.Vector2

	pressed   bool
	pressAt   math32.Vector2
	clickSlop float32

	onHoverChanged func(HoverSelection)
	onNavigate     func(NavigateEvent)
	closed         bool

	log zerolog.Logger
}

// Picker resolves the pointer against entity targets and owns the hover selection.
// Pointer events are handled synchronously; callbacks run after the internal
// state is updated and the lock is released.
type Picker interface {
	// SetTargets replaces the pickable volumes. A hovered entity whose target
	// disappeared or became invisible is un-hovered.
	SetTargets(targets []Target)

	// SetView updates the inverse view-projection and viewport used to cast rays.
	SetView(invViewProj common.Mat4, width, height float32)

	// Pick returns the entity index under (x, y), or false if none.
	// Returns ErrPickingOutOfBounds for points outside the viewport.
	Pick(x, y float32) (int, bool, error)

	// PointerMove re-resolves the hover at the new cursor position.
	PointerMove(x, y float32)

	// PointerDown starts a potential click.
	PointerDown(x, y float32)

	// PointerUp completes a click if the pointer has not moved beyond the slop
	// distance, dispatching a NavigateEvent for the hovered entity.
	PointerUp(x, y float32)

	// PointerLeave clears the hover when the cursor exits the surface.
	PointerLeave()

	// CancelClick drops any pending press, used when a press turns into a drag.
	CancelClick()

	// Hovered returns the current selection.
	Hovered() HoverSelection

	// SetHoverChangedCallback is called each time the hovered entity changes, including to none.
	SetHoverChangedCallback(cb func(HoverSelection))

	// SetNavigateCallback is called for every completed click on an entity.
	SetNavigateCallback(cb func(NavigateEvent))

	// Close clears the hover and stops all further dispatch.
	Close()
}

var _ Picker = &pickerImpl{}

// NewPicker creates a picker resolving entity data through entities.
//
// Parameters:
//   - entities: lookup for hovered entity records, usually the catalog
//   - options: functional options
//
// Returns:
//   - Picker: the picker
func NewPicker(entities EntitySource, options ...PickerBuilderOption) Picker {
	if entities == nil {
		panic("picker requires an entity source")
	}
	p := &pickerImpl{
		mu:          &sync.Mutex{},
		entities:    entities,
		invViewProj: common.Identity4(),
		hovered:     noHover,
		clickSlop:   4,
		log:         zerolog.Nop(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pickerImpl) SetTargets(targets []Target) {
	p.mu.Lock()
	p.targets = append(p.targets[:0], targets...)
	var after func()
	if p.hovered != noHover && !p.targetVisible(p.hovered) {
		after = p.setHover(noHover)
	}
	p.mu.Unlock()
	if after != nil {
		after()
	}
}

func (p *pickerImpl) SetView(invViewProj common.Mat4, width, height float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invViewProj, p.width, p.height = invViewProj, width, height
}

func (p *pickerImpl) Pick(x, y float32) (int, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pick(x, y)
}

// pick casts a ray and returns the closest visible target. Caller must hold the mutex.
func (p *pickerImpl) pick(x, y float32) (int, bool, error) {
	if err := common.PointInViewport(x, y, p.width, p.height); err != nil {
		return noHover, false, err
	}
	ray := common.ScreenRay(p.invViewProj, x, y, p.width, p.height)

	best, bestDist := noHover, math32.Inf(1)
	for _, t := range p.targets {
		if !t.Visible || t.Bounds.IsEmpty() {
			continue
		}
		hit, ok := ray.IntersectBox(t.Bounds)
		if !ok {
			continue
		}
		if d := hit.Sub(ray.Origin).Length(); d < bestDist {
			best, bestDist = t.EntityIndex, d
		}
	}
	return best, best != noHover, nil
}

// targetVisible reports whether a visible target exists for the entity. Caller must hold the mutex.
func (p *pickerImpl) targetVisible(entityIndex int) bool {
	for _, t := range p.targets {
		if t.EntityIndex == entityIndex && t.Visible {
			return true
		}
	}
	return false
}

// setHover moves the hover to index. The previous entity is un-highlighted
// before the new one is highlighted, and the returned callback publishes the
// new selection. Caller must hold the mutex.
func (p *pickerImpl) setHover(index int) func() {
	if index == p.hovered || p.closed {
		return nil
	}
	if p.hovered != noHover && p.highlighter != nil {
		p.highlighter.SetHovered(p.hovered, false)
	}
	p.hovered = noHover

	if index != noHover {
		if _, ok := p.entities.ByIndex(index); !ok {
			p.log.Warn().Int("entity", index).Msg("pick target has no catalog entry")
			index = noHover
		}
	}
	if index != noHover && p.highlighter != nil {
		p.highlighter.SetHovered(index, true)
	}
	p.hovered = index

	sel := p.selection()
	if cb := p.onHoverChanged; cb != nil {
		return func() { cb(sel) }
	}
	return nil
}

// selection builds the public hover snapshot. Caller must hold the mutex.
func (p *pickerImpl) selection() HoverSelection {
	sel := HoverSelection{Cursor: p.cursor}
	if p.hovered == noHover {
		return sel
	}
	if e, ok := p.entities.ByIndex(p.hovered); ok {
		sel.Active, sel.Entity = true, e
	}
	return sel
}

func (p *pickerImpl) PointerMove(x, y float32) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	index, _, err := p.pick(x, y)
	if errors.Is(err, common.ErrPickingOutOfBounds) {
		// events outside the surface are not hover changes
		p.mu.Unlock()
		return
	}
	p.cursor = math32.Vec2(x, y)
	after := p.setHover(index)
	p.mu.Unlock()
	if after != nil {
		after()
	}
}

func (p *pickerImpl) PointerDown(x, y float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || common.PointInViewport(x, y, p.width, p.height) != nil {
		return
	}
	p.pressed = true
	p.pressAt = math32.Vec2(x, y)
}

func (p *pickerImpl) PointerUp(x, y float32) {
	p.mu.Lock()
	if !p.pressed || p.closed {
		p.pressed = false
		p.mu.Unlock()
		return
	}
	p.pressed = false
	if math32.Vec2(x, y).Sub(p.pressAt).Length() > p.clickSlop {
		p.mu.Unlock()
		return
	}
	index, ok, err := p.pick(x, y)
	if err != nil || !ok {
		p.mu.Unlock()
		return
	}
	entity, found := p.entities.ByIndex(index)
	cb := p.onNavigate
	p.mu.Unlock()

	if !found || cb == nil {
		return
	}
	ev := NavigateEvent{Kind: NavigateViewMintDetail, Entity: entity, Target: entity.NavigationTarget}
	if entity.Status == catalog.StatusMystery {
		ev = NavigateEvent{Kind: NavigateRequestVote, Entity: entity}
	}
	p.log.Debug().Stringer("kind", ev.Kind).Str("entity", entity.Name).Msg("navigate")
	cb(ev)
}

func (p *pickerImpl) PointerLeave() {
	p.mu.Lock()
	p.pressed = false
	after := p.setHover(noHover)
	p.mu.Unlock()
	if after != nil {
		after()
	}
}

func (p *pickerImpl) CancelClick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pressed = false
}

func (p *pickerImpl) Hovered() HoverSelection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection()
}

func (p *pickerImpl) SetHoverChangedCallback(cb func(HoverSelection)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onHoverChanged = cb
}

func (p *pickerImpl) SetNavigateCallback(cb func(NavigateEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = cb
}

func (p *pickerImpl) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hovered != noHover && p.highlighter != nil {
		p.highlighter.SetHovered(p.hovered, false)
	}
	p.hovered = noHover
	p.pressed = false
	p.closed = true
	p.onHoverChanged = nil
	p.onNavigate = nil
}
