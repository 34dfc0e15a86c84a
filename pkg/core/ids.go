// pkg/core/ids.go
package core

import "fmt"

// SimulationAddress identifies a simulation application on the exercise network.
type SimulationAddress struct {
	Site        uint16 `json:"site" yaml:"site"`
	Application uint16 `json:"application" yaml:"application"`
}

func (a SimulationAddress) String() string {
	return fmt.Sprintf("%d:%d", a.Site, a.Application)
}

// EntityIdentifier uniquely identifies an entity within an exercise.
// Identifiers are plain values: two identifiers are equal when all fields are equal,
// which makes them usable as map keys.
type EntityIdentifier struct {
	Address SimulationAddress `json:"address" yaml:"address"`
	Entity  uint16            `json:"entity" yaml:"entity"`
}

func (id EntityIdentifier) String() string {
	return fmt.Sprintf("%s:%d", id.Address, id.Entity)
}

// EventIdentifier associates related fire and detonation events.
type EventIdentifier struct {
	Address SimulationAddress `json:"address" yaml:"address"`
	Event   uint16            `json:"event" yaml:"event"`
}

func (id EventIdentifier) String() string {
	return fmt.Sprintf("%s:%d", id.Address, id.Event)
}
