// Package component declares the component types stored in an ecs.World and
// the typed handles used to reach them.
package component

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID indexes a world's component stores. Zero is never issued.
type ComponentID uint32

// registry maps every issued id to the name it was declared with.
var registry struct {
	mu    sync.Mutex
	names []string
}

func register(name string) ComponentID {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("component%d", len(registry.names)+1)
	}
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names))
}

// String returns the declared name, or "invalid" for ids never issued.
func (id ComponentID) String() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if id == 0 || int(id) > len(registry.names) {
		return "invalid"
	}
	return registry.names[id-1]
}

// ComponentKind selects the store holding components of type T.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) Name() string { return k.id.String() }

// ComponentHandle is what a component file exports: one per data type,
// created at package init.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent issues a fresh kind for T under name. Two handles for the
// same T are distinct stores.
func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: register(name)}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
