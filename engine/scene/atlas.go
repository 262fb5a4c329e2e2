package scene

import "image"

// PlaceholderSlot is the atlas slot holding the neutral placeholder icon.
const PlaceholderSlot = 0

// AtlasUpdate is one slot whose pixels must be uploaded to the GPU.
type AtlasUpdate struct {
	Slot  int
	X, Y  int
	Image *image.RGBA
}

// Atlas packs icons into a square grid of equally sized slots. Icons that are
// still loading resolve to the placeholder slot until Fill is called.
type Atlas struct {
	grid     int
	slotSize int

	slots   map[string]int
	ready   map[string]bool
	next    int
	updates []AtlasUpdate
}

// NewAtlas creates a grid×grid atlas of slotSize pixel slots.
func NewAtlas(grid, slotSize int) *Atlas {
	return &Atlas{
		grid:     max(grid, 1),
		slotSize: max(slotSize, 1),
		slots:    make(map[string]int),
		ready:    make(map[string]bool),
		next:     PlaceholderSlot + 1,
	}
}

// Size returns the atlas edge length in pixels.
func (a *Atlas) Size() int {
	return a.grid * a.slotSize
}

// SlotSize returns the edge length of one slot in pixels.
func (a *Atlas) SlotSize() int {
	return a.slotSize
}

// Assign reserves a slot for ref. When the atlas is full the icon is drawn
// with the placeholder for the rest of the session.
func (a *Atlas) Assign(ref string) int {
	if s, ok := a.slots[ref]; ok {
		return s
	}
	if a.next >= a.grid*a.grid {
		return PlaceholderSlot
	}
	s := a.next
	a.next++
	a.slots[ref] = s
	return s
}

// Fill queues the pixels of a slot for upload.
func (a *Atlas) Fill(slot int, img *image.RGBA) {
	if img == nil || slot < 0 || slot >= a.grid*a.grid {
		return
	}
	x, y := a.origin(slot)
	a.updates = append(a.updates, AtlasUpdate{Slot: slot, X: x, Y: y, Image: img})
}

// MarkReady makes ref resolve to its own slot from now on.
func (a *Atlas) MarkReady(ref string) {
	if _, ok := a.slots[ref]; ok {
		a.ready[ref] = true
	}
}

// Slot returns the slot to draw ref with this frame.
func (a *Atlas) Slot(ref string) int {
	if ref == "" || !a.ready[ref] {
		return PlaceholderSlot
	}
	return a.slots[ref]
}

// UV returns the normalized (u0, v0, u1, v1) rectangle of a slot.
func (a *Atlas) UV(slot int) [4]float32 {
	x, y := a.origin(slot)
	size := float32(a.Size())
	return [4]float32{
		float32(x) / size,
		float32(y) / size,
		float32(x+a.slotSize) / size,
		float32(y+a.slotSize) / size,
	}
}

// TakeUpdates returns and clears the pending uploads.
func (a *Atlas) TakeUpdates() []AtlasUpdate {
	out := a.updates
	a.updates = nil
	return out
}

func (a *Atlas) origin(slot int) (x, y int) {
	return (slot % a.grid) * a.slotSize, (slot / a.grid) * a.slotSize
}
