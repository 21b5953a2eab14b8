package core

// Color represents a foreground color for a screen cell.
// Values are semantic; the platform maps them to terminal colors.
type Color uint8

// Palette for heist elements.
const (
	ColorDefault Color = iota
	ColorWall
	ColorDoorClosed
	ColorDoorOpen
	ColorPlate
	ColorPlatePressed
	ColorLoot
	ColorExtract
	ColorPlayer
	ColorClone
	ColorSensor
	ColorSensorAlert
	ColorHUD
	ColorWarning
	ColorSuccess
)
