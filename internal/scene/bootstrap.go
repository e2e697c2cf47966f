package scene

import "strings"

const (
	acPrefix   = "AC_"
	windowName = "Window"
	roomName   = "Room"

	// RoomOpacity is the room shell's opacity after Bootstrap.
	RoomOpacity = 0.2
)

// Anchors are the two emitter anchors found in the scene. They are borrowed
// references into the scene graph.
type Anchors struct {
	AC     *Node
	Window *Node
	Room   *Node
}

// Bootstrap walks every mesh node once. A name starting with "AC_" becomes
// the AC anchor (the last match wins), "Window" becomes the window anchor,
// and "Room" is made double-sided and translucent without depth writes so
// the interior stays visible. Missing anchors are reported as a
// *MissingAnchorError alongside whatever was found.
func Bootstrap(s *Scene) (Anchors, error) {
	var a Anchors
	for _, n := range s.Meshes() {
		switch {
		case strings.HasPrefix(n.Name, acPrefix):
			a.AC = n
		case n.Name == windowName:
			a.Window = n
		case n.Name == roomName:
			a.Room = n
			styleRoom(n.Mesh)
		}
	}

	var missing []string
	if a.AC == nil {
		missing = append(missing, acPrefix+"*")
	}
	if a.Window == nil {
		missing = append(missing, windowName)
	}
	if len(missing) > 0 {
		return a, &MissingAnchorError{Missing: missing}
	}
	return a, nil
}

func styleRoom(m *Mesh) {
	if m.Material == nil {
		m.Material = DefaultMaterial()
	}
	m.Material.DoubleSided = true
	m.Material.Transparent = true
	m.Material.Opacity = RoomOpacity
	m.Material.DepthWrite = false
}

// Role names the anchor role a node name maps to, or "" if none.
func Role(name string) string {
	switch {
	case strings.HasPrefix(name, acPrefix):
		return "ac"
	case name == windowName:
		return "window"
	case name == roomName:
		return "room"
	}
	return ""
}
