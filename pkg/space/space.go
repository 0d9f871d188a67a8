// Package space re-projects a save document into a structured base
// configuration: defense and loot entities become typed spec records
// with formatted coordinates, everything else is carried into a residual
// document.
package space

import (
	"encoding/json"
	"fmt"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/matching"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

// Archetype patterns for the recognized categories. These are fixed:
// the projection targets specific record shapes, not arbitrary filters.
var (
	turretPatterns = []string{
		"assets/prefabs/npc/autoturret/*",
		"assets/prefabs/npc/flame turret/*",
		"assets/prefabs/npc/sam_site_turret/*",
		"assets/prefabs/deployable/single shot trap/guntrap.deployed.prefab",
	}
	cratePatterns = []string{
		"assets/prefabs/deployable/large wood storage/*",
		"assets/prefabs/deployable/woodenbox/*",
		"assets/prefabs/deployable/locker/locker.deployed.prefab",
	}
	doorPatterns = []string{
		"assets/prefabs/building/door.hinged/*",
		"assets/prefabs/building/door.double.hinged/*",
		"assets/prefabs/building/wall.frame.garagedoor/*",
	}
)

// Vector is a position or rotation lifted from an entity record.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Coord renders the vector in the "x y z" form the base-configuration
// consumers expect.
func (v Vector) Coord() string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}

// TurretSpec is one projected turret.
type TurretSpec struct {
	TypeID   string `json:"typeId"`
	Position string `json:"position"`
	Rotation string `json:"rotation"`
	On       bool   `json:"on"`
}

// CrateSpec is one projected loot container.
type CrateSpec struct {
	TypeID    string `json:"typeId"`
	Position  string `json:"position"`
	Rotation  string `json:"rotation"`
	ItemCount int    `json:"itemCount"`
}

// DoorSpec is one projected door. Code is set for access-controlled
// doors only.
type DoorSpec struct {
	TypeID   string `json:"typeId"`
	Position string `json:"position"`
	Rotation string `json:"rotation"`
	Code     string `json:"code,omitempty"`
}

// OtherEntity is one residual entity, reduced to the fields downstream
// tooling needs for re-placement.
type OtherEntity struct {
	TypeID   string `json:"typeId"`
	Position string `json:"position"`
	Rotation string `json:"rotation"`
	SkinID   int64  `json:"skinId,omitempty"`
}

// BaseConfig is the structured configuration document do-space emits.
type BaseConfig struct {
	SourceVersion string       `json:"sourceFormatVersion"`
	Turrets       []TurretSpec `json:"turrets"`
	Crates        []CrateSpec  `json:"crates"`
	CodeDoors     []DoorSpec   `json:"accessControlledDoors"`
	Doors         []DoorSpec   `json:"doors"`
}

// Residual is the other-entities document emitted next to the config.
type Residual struct {
	SourceVersion string        `json:"sourceFormatVersion"`
	Entities      []OtherEntity `json:"entities"`
}

// Project splits the document into a base configuration and the
// residual entity list. The document is not mutated.
func Project(doc *paste.Document) (*BaseConfig, *Residual) {
	config := &BaseConfig{
		SourceVersion: doc.FormatVersion(),
		Turrets:       []TurretSpec{},
		Crates:        []CrateSpec{},
		CodeDoors:     []DoorSpec{},
		Doors:         []DoorSpec{},
	}
	residual := &Residual{
		SourceVersion: doc.FormatVersion(),
		Entities:      []OtherEntity{},
	}

	for _, e := range doc.Entities() {
		pos := vectorField(e, "pos")
		rot := vectorField(e, "rot")

		switch {
		case matching.Matches(e.TypeID(), turretPatterns):
			config.Turrets = append(config.Turrets, TurretSpec{
				TypeID:   e.TypeID(),
				Position: pos.Coord(),
				Rotation: rot.Coord(),
				On:       e.IsOn(),
			})
		case matching.Matches(e.TypeID(), cratePatterns):
			config.Crates = append(config.Crates, CrateSpec{
				TypeID:    e.TypeID(),
				Position:  pos.Coord(),
				Rotation:  rot.Coord(),
				ItemCount: e.ItemCount(),
			})
		case matching.Matches(e.TypeID(), doorPatterns):
			door := DoorSpec{
				TypeID:   e.TypeID(),
				Position: pos.Coord(),
				Rotation: rot.Coord(),
			}
			if e.Lock().HasCode() {
				door.Code = e.Lock().Code()
				config.CodeDoors = append(config.CodeDoors, door)
			} else {
				config.Doors = append(config.Doors, door)
			}
		default:
			residual.Entities = append(residual.Entities, OtherEntity{
				TypeID:   e.TypeID(),
				Position: pos.Coord(),
				Rotation: rot.Coord(),
				SkinID:   skinID(e),
			})
		}
	}

	return config, residual
}

func vectorField(e *paste.Entity, key string) Vector {
	var v Vector
	if raw := e.Raw(key); raw != nil {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

func skinID(e *paste.Entity) int64 {
	raw := e.Raw("skinId")
	if raw == nil {
		return 0
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0
	}
	return id
}
