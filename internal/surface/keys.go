package surface

import "github.com/go-gl/glfw/v3.3/glfw"

// keyNames maps GLFW keys to the names used in the config file.
var keyNames = map[glfw.Key]string{
	glfw.KeySpace:     "space",
	glfw.KeyEnter:     "enter",
	glfw.KeyEscape:    "escape",
	glfw.KeyTab:       "tab",
	glfw.KeyBackspace: "backspace",
	glfw.KeyLeft:      "left",
	glfw.KeyRight:     "right",
	glfw.KeyUp:        "up",
	glfw.KeyDown:      "down",
	glfw.KeyF1:        "f1",
	glfw.KeyF2:        "f2",
	glfw.KeyF3:        "f3",
	glfw.KeyF4:        "f4",
	glfw.KeyF5:        "f5",
	glfw.KeyF6:        "f6",
	glfw.KeyF7:        "f7",
	glfw.KeyF8:        "f8",
	glfw.KeyF9:        "f9",
	glfw.KeyF10:       "f10",
	glfw.KeyF11:       "f11",
	glfw.KeyF12:       "f12",
}

// keyName returns the config name of key. Printable keys use the layout
// dependent name GLFW reports, so "q" is the key labelled Q.
func keyName(key glfw.Key, scancode int) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return glfw.GetKeyName(key, scancode)
}
