// Package object provides the identity and lifecycle flags shared by every
// engine entity: scene nodes, textures, shaders, backgrounds and sounds.
package object

import (
	"fmt"

	"github.com/google/uuid"
)

// Base is embedded by engine entities. The zero value is not usable; build one
// with New so the entity gets its id.
type Base struct {
	id      uuid.UUID
	name    string
	kind    string
	enabled bool
	deleted bool
}

// New returns an enabled, live Base with a fresh id. kind names the embedding
// type for String; name defaults to kind when empty.
func New(kind, name string) Base {
	if name == "" {
		name = kind
	}
	return Base{
		id:      uuid.New(),
		name:    name,
		kind:    kind,
		enabled: true,
	}
}

func (b *Base) ID() uuid.UUID    { return b.id }
func (b *Base) Name() string     { return b.name }
func (b *Base) Kind() string     { return b.kind }
func (b *Base) Enabled() bool    { return b.enabled }
func (b *Base) Deleted() bool    { return b.deleted }
func (b *Base) SetName(n string) { b.name = n }

// IsAlive reports whether b refers to a constructed entity that was not deleted.
// It is safe to call on a nil pointer.
func (b *Base) IsAlive() bool {
	return b != nil && b.id != uuid.Nil && !b.deleted
}

// MarkEnabled sets the enabled flag without any cascade; embedding types wrap it.
func (b *Base) MarkEnabled(status bool) { b.enabled = status }

// MarkDeleted flags b as logically dead. Releasing registries and resources is
// the embedding type's job.
func (b *Base) MarkDeleted() { b.deleted = true }

func (b *Base) String() string {
	return fmt.Sprintf("%s (%s)", b.name, b.kind)
}
