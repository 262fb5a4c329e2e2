package hud

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Carmen-Shannon/oxy-plaza/engine/interaction"
)

const (
	padding    = 8
	lineGap    = 3
	badgePadX  = 5
	badgePadY  = 2
	borderSize = 2
)

// Card is the laid-out tooltip for one frame. Position is the top-left
// corner in pixels.
type Card struct {
	Visible     bool
	Title       string
	Badge       Badge
	Description []string
	Accent      colorful.Color
	Position    math32.Vector2
	Size        math32.Vector2
}

type overlayImpl struct {
	mu *sync.Mutex

	face      font.Face
	offset    math32.Vector2
	wrapChars int

	card Card

	image      *image.RGBA
	imageKey   string
	imageDirty bool
}

// Overlay lays out and rasterizes the hover tooltip card.
type Overlay interface {
	// Update lays the card out for the current hover selection. It is called
	// every frame with the picker's selection so the card follows the cursor
	// at picking cadence and hides on the first frame the hover is empty.
	//
	// Parameters:
	//   - sel: current hover selection
	//   - width, height: viewport size in pixels
	Update(sel interaction.HoverSelection, width, height float32)

	// Card returns the current layout.
	Card() Card

	// Image returns the rasterized card and whether its pixels changed since
	// the last call. Moving the card does not re-rasterize it.
	Image() (*image.RGBA, bool)
}

var _ Overlay = &overlayImpl{}

// NewOverlay creates an overlay using the built-in 7x13 bitmap face.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Overlay: the overlay
func NewOverlay(options ...OverlayBuilderOption) Overlay {
	o := &overlayImpl{
		mu:        &sync.Mutex{},
		face:      basicfont.Face7x13,
		offset:    math32.Vec2(16, 16),
		wrapChars: 34,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *overlayImpl) Update(sel interaction.HoverSelection, width, height float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !sel.Active {
		o.card.Visible = false
		return
	}
	e := sel.Entity
	desc := e.Description
	if desc == "" {
		desc = DefaultDescription(e.Status)
	}
	card := Card{
		Visible:     true,
		Title:       e.Name,
		Badge:       BadgeFor(e.Status),
		Description: wrap(desc, o.wrapChars),
		Accent:      e.Color,
	}
	if e.Symbol != "" {
		card.Title = e.Name + " (" + e.Symbol + ")"
	}
	card.Size = o.measure(card)
	card.Position = place(sel.Cursor, o.offset, card.Size, math32.Vec2(width, height))

	if key := cardKey(card); key != o.imageKey {
		o.imageKey = key
		o.imageDirty = true
	}
	o.card = card
}

func (o *overlayImpl) Card() Card {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.card
}

func (o *overlayImpl) Image() (*image.RGBA, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.card.Visible {
		return nil, false
	}
	if !o.imageDirty && o.image != nil {
		return o.image, false
	}
	o.image = o.rasterize(o.card)
	o.imageDirty = false
	return o.image, true
}

// place puts the card at cursor+offset, flipping to the other side of the
// cursor on any axis where it would leave the viewport.
func place(cursor, offset, size, viewport math32.Vector2) math32.Vector2 {
	pos := cursor.Add(offset)
	if pos.X+size.X > viewport.X {
		pos.X = cursor.X - offset.X - size.X
	}
	if pos.Y+size.Y > viewport.Y {
		pos.Y = cursor.Y - offset.Y - size.Y
	}
	pos.X = max(pos.X, 0)
	pos.Y = max(pos.Y, 0)
	return pos
}

func (o *overlayImpl) lineHeight() int {
	return o.face.Metrics().Height.Ceil() + lineGap
}

func (o *overlayImpl) measure(c Card) math32.Vector2 {
	w := font.MeasureString(o.face, c.Title).Ceil()
	w = max(w, font.MeasureString(o.face, c.Badge.Label).Ceil()+2*badgePadX)
	for _, l := range c.Description {
		w = max(w, font.MeasureString(o.face, l).Ceil())
	}
	lines := 2 + len(c.Description)
	h := lines*o.lineHeight() + 2*badgePadY
	return math32.Vec2(float32(w+2*padding), float32(h+2*padding))
}

func (o *overlayImpl) rasterize(c Card) *image.RGBA {
	w, h := int(c.Size.X), int(c.Size.Y)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := colorful.Color{R: 0.06, G: 0.07, B: 0.12}.BlendLab(c.Accent, 0.12).Clamped()
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(c.Accent, 230)), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds().Inset(borderSize), image.NewUniform(rgba(bg, 220)), image.Point{}, draw.Src)

	ascent := o.face.Metrics().Ascent.Ceil()
	lh := o.lineHeight()
	y := padding

	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: o.face}
	d.Dot = fixed.P(padding, y+ascent)
	d.DrawString(c.Title)
	y += lh

	bw := font.MeasureString(o.face, c.Badge.Label).Ceil() + 2*badgePadX
	pill := image.Rect(padding, y, padding+bw, y+lh+2*badgePadY-lineGap)
	draw.Draw(img, pill, image.NewUniform(rgba(c.Badge.Color, 255)), image.Point{}, draw.Src)
	d.Src = image.NewUniform(color.Black)
	d.Dot = fixed.P(padding+badgePadX, y+badgePadY+ascent)
	d.DrawString(c.Badge.Label)
	y += lh + 2*badgePadY

	d.Src = image.NewUniform(color.RGBA{R: 220, G: 224, B: 235, A: 255})
	for _, l := range c.Description {
		d.Dot = fixed.P(padding, y+ascent)
		d.DrawString(l)
		y += lh
	}
	return img
}

// rgba converts to premultiplied 8-bit color with the given alpha.
func rgba(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := uint32(alpha)
	return color.RGBA{R: uint8(uint32(r) * a / 255), G: uint8(uint32(g) * a / 255), B: uint8(uint32(b) * a / 255), A: alpha}
}

func cardKey(c Card) string {
	return c.Title + "\x00" + c.Badge.Label + "\x00" + c.Accent.Hex() + "\x00" + strings.Join(c.Description, "\n")
}

// wrap splits s into lines of at most width characters on word boundaries.
// Words longer than width get a line of their own.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
