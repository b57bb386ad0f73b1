// Package frontend provides the circuit builder and the generator
// protocol: registration of off-circuit witness computations with declared
// dependency and output wires, deferred finalization hooks for batched
// gadgets, and a binary persistence contract restoring generators through
// a closed registry.
package frontend
