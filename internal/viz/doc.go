// Package viz draws the room in a terminal.
//
//   - [Canvas]: braille dot grid with a colour pen per cell
//   - [Projector]: maps world points through a scene camera onto a canvas
//   - [Wireframe]: mesh bounds as box edges, drawn far to near
//
// The lipgloss styles shared by the terminal viewer live here too.
package viz
