package interaction

import "github.com/rs/zerolog"

// PickerBuilderOption is a functional option for configuring a Picker.
type PickerBuilderOption func(*pickerImpl)

// WithHighlighter sets the receiver of hover on/off transitions.
//
// Parameters:
//   - h: the highlighter, usually the scene
//
// Returns:
//   - PickerBuilderOption: the option
func WithHighlighter(h Highlighter) PickerBuilderOption {
	return func(p *pickerImpl) {
		p.highlighter = h
	}
}

// WithClickSlop sets how far in pixels the pointer may travel between down
// and up and still count as a click.
func WithClickSlop(pixels float32) PickerBuilderOption {
	return func(p *pickerImpl) {
		if pixels >= 0 {
			p.clickSlop = pixels
		}
	}
}

// WithLogger sets the picker's logger.
func WithLogger(log zerolog.Logger) PickerBuilderOption {
	return func(p *pickerImpl) {
		p.log = log
	}
}
