package world

import _ "embed"

//go:embed levels/arena.json
var arenaLevel []byte

// ArenaLevel returns a copy of the built-in arena level.
func ArenaLevel() []byte {
	return append([]byte(nil), arenaLevel...)
}

// LoadArena loads the built-in arena.
func (w *World) LoadArena() error {
	return w.LoadLevel(arenaLevel)
}
