package scene

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

// dragSlop is how far in pixels a pressed pointer travels before the press
// becomes a camera drag instead of a click.
const dragSlop = 4

type dragState struct {
	button   int
	pressed  bool
	dragging bool
	origin   math32.Vector2
	last     math32.Vector2
}

func (s *scene) PointerMove(x, y float32) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	d := &s.drag
	pos := math32.Vec2(x, y)
	startDrag, dragging := false, false
	var delta math32.Vector2
	button := d.button
	if d.pressed {
		if !d.dragging && pos.Sub(d.origin).Length() > dragSlop {
			d.dragging, startDrag = true, true
		}
		if d.dragging {
			dragging = true
			delta = pos.Sub(d.last)
			d.last = pos
		}
	}
	s.mu.Unlock()

	if startDrag {
		s.picker.CancelClick()
		s.director.BeginDrag()
	}
	if !dragging {
		s.picker.PointerMove(x, y)
		return
	}
	switch button {
	case common.MouseRight, common.MouseMiddle:
		s.director.Pan(delta.X, delta.Y)
	default:
		s.director.Orbit(delta.X, delta.Y)
	}
}

func (s *scene) PointerDown(x, y float32, button int) {
	s.mu.Lock()
	if s.closed || s.drag.pressed {
		s.mu.Unlock()
		return
	}
	pos := math32.Vec2(x, y)
	s.drag = dragState{button: button, pressed: true, origin: pos, last: pos}
	s.mu.Unlock()

	if button == common.MouseLeft {
		s.picker.PointerDown(x, y)
	}
}

func (s *scene) PointerUp(x, y float32, button int) {
	s.mu.Lock()
	if s.closed || !s.drag.pressed || s.drag.button != button {
		s.mu.Unlock()
		return
	}
	wasDragging := s.drag.dragging
	s.drag = dragState{}
	s.mu.Unlock()

	if wasDragging {
		s.director.EndDrag()
		return
	}
	if button == common.MouseLeft {
		s.picker.PointerUp(x, y)
	}
}

func (s *scene) PointerLeave() {
	s.picker.PointerLeave()
}

func (s *scene) Scroll(delta float32) {
	if s.Closed() || delta == 0 {
		return
	}
	s.director.Zoom(delta)
}

func (s *scene) Key(key, mods int) {
	if s.Closed() {
		return
	}
	shift := mods&common.ModShift != 0

	switch {
	case key == common.KeyRight || key == common.KeyN:
		s.director.Next()
	case key == common.KeyLeft || key == common.KeyP:
		s.director.Prev()
	case key == common.KeyHome:
		s.director.Home()
	case key == common.KeyEnd:
		s.director.End()
	case key == common.KeySpace:
		s.director.ToggleAutoplay()
	case shift && key >= common.Key1 && key <= common.Key3:
		presets := layout.Presets()
		if i := key - common.Key1; i < len(presets) {
			s.resolver.Select(presets[i].Name, s.resolver.Context())
		}
	case key >= common.Key0 && key <= common.Key9:
		s.director.Goto(key - common.Key0)
	case key == common.KeyC:
		ctx := layout.ContextCompact
		if s.resolver.Context() == layout.ContextCompact {
			ctx = layout.ContextDesktop
		}
		s.resolver.SetContext(ctx)
	case key == common.KeyF:
		s.sendEffect(layout.EffectFull)
	case key == common.KeyM:
		s.sendEffect(layout.EffectMinimal)
	case key == common.KeyR:
		s.sendEffect(layout.EffectPerformance)
	case key == common.KeyEsc:
		s.mu.Lock()
		cb := s.onQuit
		s.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

// sendEffect queues an effect density command; a full queue drops the command.
func (s *scene) sendEffect(e layout.EffectPreset) {
	select {
	case s.resolver.Commands() <- e:
	default:
		s.log.Warn().Stringer("effect", e).Msg("effect command queue full, dropping command")
	}
}
