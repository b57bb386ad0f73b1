package frontend

import (
	"github.com/Cristian13432/succinctx/vars"
)

// Generator is a unit of off-circuit computation populating output wires
// from input wires at witness generation time.
//
// A generator is registered once with the builder and invoked exactly once
// per witness, after all its dependencies hold concrete values; the solver
// enforces this ordering. A generator is the sole writer of its output
// wires, which the builder enforces at registration.
type Generator interface {
	// ID returns a stable, globally unique, versioned identifier. It
	// selects the deserializer when restoring a persisted circuit.
	ID() string

	// Dependencies returns the wires that must hold concrete values
	// before the generator may run.
	Dependencies() []vars.Variable

	// Outputs returns the wires the generator writes.
	Outputs() []vars.Variable

	// RunOnce reads the dependency values, computes, and writes every
	// output wire. A returned error aborts the witness generation
	// attempt.
	RunOnce(w *vars.Witness) error

	// Serialize writes the generator to its persisted binary layout:
	// fixed-width scalar fields and length-prefixed wire lists, in a
	// stable generator-specific order.
	Serialize(w *Writer) error
}
