package hud

import (
	"cogentcore.org/core/math32"
	"golang.org/x/image/font"
)

// OverlayBuilderOption is a functional option for configuring an Overlay.
type OverlayBuilderOption func(*overlayImpl)

// WithFace sets the font face used for all card text.
func WithFace(face font.Face) OverlayBuilderOption {
	return func(o *overlayImpl) {
		if face != nil {
			o.face = face
		}
	}
}

// WithCursorOffset sets the distance in pixels between the cursor and the card corner.
//
// Parameters:
//   - x, y: offset in pixels
//
// Returns:
//   - OverlayBuilderOption: the option
func WithCursorOffset(x, y float32) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.offset = math32.Vec2(x, y)
	}
}

// WithWrapWidth sets the maximum description line length in characters.
func WithWrapWidth(chars int) OverlayBuilderOption {
	return func(o *overlayImpl) {
		if chars > 0 {
			o.wrapChars = chars
		}
	}
}
