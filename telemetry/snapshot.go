package telemetry

import (
	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/vmath"
)

// Message types
const (
	MessageTypeHello = "hello"
	MessageTypeFrame = "frame"
)

// Hello is the first message of every connection
type Hello struct {
	Type    string  `json:"type"`
	Session string  `json:"session"`
	Client  string  `json:"client"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Every   int     `json:"every"`
}

// Vec is the wire form of a vector
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toVec(v vmath.Vec2) Vec { return Vec{X: v.X, Y: v.Y} }

// EntitySnapshot is the observable physics state of one entity
type EntitySnapshot struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	Kind         string     `json:"kind"`
	Rect         [4]float64 `json:"rect"`
	Velocity     Vec        `json:"velocity"`
	Acceleration Vec        `json:"acceleration"`
	Forces       []Vec      `json:"forces,omitempty"`
	Material     string     `json:"material,omitempty"`
	Active       bool       `json:"active"`
	Static       bool       `json:"static,omitempty"`
	Contact      bool       `json:"contact,omitempty"`
}

// Frame is one published scene snapshot
type Frame struct {
	Type     string           `json:"type"`
	Session  string           `json:"session"`
	Frame    int64            `json:"frame"`
	Scene    string           `json:"scene"`
	Gravity  Vec              `json:"gravity"`
	Entities []EntitySnapshot `json:"entities"`
}

// Snapshot captures an entity, forces are copied so the frame can leave the loop goroutine
func Snapshot(e *engine.Entity) EntitySnapshot {
	es := EntitySnapshot{
		ID:           uint64(e.ID),
		Name:         e.Name,
		Kind:         e.Kind.String(),
		Rect:         [4]float64{e.X, e.Y, e.Width, e.Height},
		Velocity:     toVec(e.Velocity),
		Acceleration: toVec(e.Acceleration),
		Active:       e.Active,
		Static:       e.Static,
		Contact:      e.Contact,
	}
	if e.Material != nil {
		es.Material = e.Material.Name
	}
	if len(e.Forces) > 0 {
		es.Forces = make([]Vec, len(e.Forces))
		for i, f := range e.Forces {
			es.Forces[i] = toVec(f)
		}
	}
	return es
}

// SceneFrame captures every entity of the scene in registry order
func SceneFrame(session string, frame int64, s engine.Scene) Frame {
	f := Frame{
		Type:     MessageTypeFrame,
		Session:  session,
		Frame:    frame,
		Scene:    s.Name(),
		Entities: make([]EntitySnapshot, 0, s.Entities().Len()),
	}
	if w := s.World(); w != nil {
		f.Gravity = toVec(w.Gravity())
	}
	s.Entities().Each(func(e *engine.Entity) bool {
		f.Entities = append(f.Entities, Snapshot(e))
		return true
	})
	return f
}
