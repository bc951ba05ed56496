package hook

import "github.com/google/uuid"

// The types below are plain data carriers for event payloads. The hook
// core never interprets them; the embedding server owns the actual
// world state.

// Player identifies a connected player.
type Player struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"` // remote IP, set for connection hooks
}

// Location is a position in the world.
type Location struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float32 `json:"rotation,omitempty"`
	Pitch    float32 `json:"pitch,omitempty"`
}

// Block is a single block snapshot.
// Status carries hook-specific detail: for ignite 1=lava, 2=lighter,
// 3=spread; for explode 1=dynamite, 2=creeper.
type Block struct {
	Type   int      `json:"type"`
	Status int      `json:"status,omitempty"`
	Loc    Location `json:"loc"`
}

// Item is an inventory item stack.
type Item struct {
	Type   int `json:"type"`
	Amount int `json:"amount"`
	Slot   int `json:"slot,omitempty"`
}

// Mob is a mob snapshot used by the spawn hook.
type Mob struct {
	Type string   `json:"type"`
	Loc  Location `json:"loc"`
}
