package common

// Logical screen size. The game scales this to the window.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
