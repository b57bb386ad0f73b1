package frontend

import (
	"fmt"
	"sync"
)

// Deserializer restores a generator from its persisted binary layout.
type Deserializer func(r *Reader) (Generator, error)

var (
	registryM sync.RWMutex
	registry  = make(map[string]Deserializer)
)

// RegisterGenerator registers a deserializer for the given generator id.
// The registry is closed: packages defining generators call this from
// their init functions, so restoring a persisted circuit needs no runtime
// type introspection. Registering the same id twice panics.
func RegisterGenerator(id string, d Deserializer) {
	if id == "" {
		panic("generator id must not be empty")
	}
	registryM.Lock()
	defer registryM.Unlock()
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("generator id %q already registered", id))
	}
	registry[id] = d
}

// RegisterHint registers a deserializer for a hint-backed generator.
func RegisterHint(id string, d HintDeserializer) {
	RegisterGenerator(id, func(r *Reader) (Generator, error) {
		return deserializeHintGenerator(r, func(r *Reader) (Hint, error) {
			return d(r)
		})
	})
}

// RegisterAsyncHint registers a deserializer for an async-hint-backed
// generator.
func RegisterAsyncHint(id string, d AsyncHintDeserializer) {
	RegisterGenerator(id, func(r *Reader) (Generator, error) {
		return deserializeHintGenerator(r, func(r *Reader) (Hint, error) {
			h, err := d(r)
			if err != nil {
				return nil, err
			}
			return asyncBridge{h: h}, nil
		})
	})
}

func getDeserializer(id string) (Deserializer, bool) {
	registryM.RLock()
	defer registryM.RUnlock()
	d, ok := registry[id]
	return d, ok
}
