package common

// Virtual key codes for the viewer's navigation map.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32 // toggle autoplay
	KeyC     = 67 // toggle compact framing
	KeyF     = 70 // full effects
	KeyM     = 77 // minimal effects
	KeyN     = 78 // next stop
	KeyP     = 80 // previous stop
	KeyR     = 82 // performance effects

	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key9 = 57

	KeyEsc   = 256
	KeyRight = 262
	KeyLeft  = 263
	KeyHome  = 268
	KeyEnd   = 269
)

// Modifier bits as reported by GLFW.
const (
	ModShift = 0x0001
)

// Mouse buttons as reported by GLFW.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)
