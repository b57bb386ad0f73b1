package frontend

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Cristian13432/succinctx/vars"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
)

// Version is the persisted circuit format version. Artifacts with a
// different major version are rejected on read.
const Version = "1.0.0"

// Circuit is a finalized circuit: the wire set, the equality constraints,
// and the generators populating wires at witness generation time, in
// registration order.
type Circuit struct {
	Kinds       []vars.Kind
	Constraints []Constraint
	Generators  []Generator
}

// NbWires returns the number of wires in the circuit.
func (c *Circuit) NbWires() int { return len(c.Kinds) }

// NewWitness returns an empty assignment sized for the circuit.
func (c *Circuit) NewWitness() *vars.Witness {
	return vars.NewWitness(len(c.Kinds))
}

type storedGenerator struct {
	ID   string `cbor:"id"`
	Data []byte `cbor:"data"`
}

type storedCircuit struct {
	Version     string            `cbor:"version"`
	Kinds       []uint8           `cbor:"kinds"`
	Constraints [][2]uint32       `cbor:"constraints"`
	Generators  []storedGenerator `cbor:"generators"`
}

// WriteTo writes the circuit to w. Generators are persisted as binary
// payloads keyed by their id inside a cbor envelope.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	stored := storedCircuit{
		Version:     Version,
		Kinds:       make([]uint8, len(c.Kinds)),
		Constraints: make([][2]uint32, len(c.Constraints)),
		Generators:  make([]storedGenerator, 0, len(c.Generators)),
	}
	for i, k := range c.Kinds {
		stored.Kinds[i] = uint8(k)
	}
	for i, cs := range c.Constraints {
		stored.Constraints[i] = [2]uint32{cs.A.Index(), cs.B.Index()}
	}
	for _, g := range c.Generators {
		var buf bytes.Buffer
		if err := g.Serialize(NewWriter(&buf)); err != nil {
			return 0, fmt.Errorf("serialize generator %s: %w", g.ID(), err)
		}
		stored.Generators = append(stored.Generators, storedGenerator{ID: g.ID(), Data: buf.Bytes()})
	}

	enc, err := cbor.Marshal(stored)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadFrom restores a circuit written by WriteTo. Generators are rebuilt
// through the registry; an unknown id or a malformed payload is a fatal
// read error.
func (c *Circuit) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	var stored storedCircuit
	if err := cbor.Unmarshal(data, &stored); err != nil {
		return int64(len(data)), fmt.Errorf("decode circuit: %w", err)
	}

	version, err := semver.Parse(stored.Version)
	if err != nil {
		return int64(len(data)), fmt.Errorf("parse circuit version %q: %w", stored.Version, err)
	}
	if current := semver.MustParse(Version); version.Major != current.Major {
		return int64(len(data)), fmt.Errorf("incompatible circuit version %s, current is %s", version, current)
	}

	c.Kinds = make([]vars.Kind, len(stored.Kinds))
	for i, k := range stored.Kinds {
		if vars.Kind(k) > vars.Boolean {
			return int64(len(data)), fmt.Errorf("invalid wire kind %d at index %d", k, i)
		}
		c.Kinds[i] = vars.Kind(k)
	}

	c.Constraints = make([]Constraint, len(stored.Constraints))
	for i, cs := range stored.Constraints {
		a, err := c.wire(cs[0])
		if err != nil {
			return int64(len(data)), fmt.Errorf("constraint %d: %w", i, err)
		}
		b, err := c.wire(cs[1])
		if err != nil {
			return int64(len(data)), fmt.Errorf("constraint %d: %w", i, err)
		}
		c.Constraints[i] = Constraint{A: a, B: b}
	}

	c.Generators = make([]Generator, 0, len(stored.Generators))
	for _, sg := range stored.Generators {
		d, ok := getDeserializer(sg.ID)
		if !ok {
			return int64(len(data)), fmt.Errorf("unknown generator id %q", sg.ID)
		}
		g, err := d(NewReader(bytes.NewReader(sg.Data)))
		if err != nil {
			return int64(len(data)), fmt.Errorf("deserialize generator %s: %w", sg.ID, err)
		}
		c.Generators = append(c.Generators, g)
	}
	return int64(len(data)), nil
}

func (c *Circuit) wire(index uint32) (vars.Variable, error) {
	if index >= uint32(len(c.Kinds)) {
		return vars.Variable{}, fmt.Errorf("wire %d out of range, circuit has %d wires", index, len(c.Kinds))
	}
	return vars.NewVariable(index, c.Kinds[index]), nil
}
