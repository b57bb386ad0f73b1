package frontend

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/Cristian13432/succinctx/vars"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterHint("frontend.doubleHint.v1", func(r *Reader) (Hint, error) {
		return doubleHint{}, nil
	})
}

func buildDoubleCircuit(t *testing.T) (*Circuit, vars.ScalarVariable, vars.ScalarVariable) {
	t.Helper()
	b := NewBuilder()
	x := b.InitScalar()
	input := vars.NewVariableStream()
	input.Write(x.Vars()...)
	doubled := b.Hint(input, doubleHint{}).ReadScalar()

	// bind the hint output to a placeholder, as a gadget would
	placeholder := b.InitScalar()
	b.AssertIsEqual(doubled.Variable, placeholder.Variable)

	circuit, err := b.Finalize()
	require.NoError(t, err)
	return circuit, x, doubled
}

func TestCircuitRoundTrip(t *testing.T) {
	circuit, x, doubled := buildDoubleCircuit(t)

	var buf bytes.Buffer
	_, err := circuit.WriteTo(&buf)
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, circuit.Kinds, restored.Kinds)
	require.Equal(t, circuit.Constraints, restored.Constraints)
	require.Len(t, restored.Generators, 1)

	// the restored generator behaves identically on an identical witness
	for _, c := range []*Circuit{circuit, &restored} {
		w := c.NewWitness()
		w.SetScalar(x, big.NewInt(21))
		require.NoError(t, c.Generators[0].RunOnce(w))
		require.Equal(t, big.NewInt(42), w.GetScalar(doubled))
	}
}

func TestCircuitReadUnknownGeneratorID(t *testing.T) {
	b := NewBuilder()
	out := b.InitBytes32()
	b.Register(&stubGenerator{id: "frontend.unregistered.v1", outs: out.Vars()})
	circuit, err := b.Finalize()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = circuit.WriteTo(&buf)
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(&buf)
	require.ErrorContains(t, err, "unknown generator id")
}

func TestCircuitReadRejectsIncompatibleVersion(t *testing.T) {
	enc, err := cbor.Marshal(storedCircuit{Version: "2.0.0"})
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(bytes.NewReader(enc))
	require.ErrorContains(t, err, "incompatible circuit version")
}

func TestCircuitReadTruncatedGeneratorPayload(t *testing.T) {
	circuit, _, _ := buildDoubleCircuit(t)

	var buf bytes.Buffer
	_, err := circuit.WriteTo(&buf)
	require.NoError(t, err)

	var stored storedCircuit
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &stored))
	require.Len(t, stored.Generators, 1)
	stored.Generators[0].Data = stored.Generators[0].Data[:2]
	enc, err := cbor.Marshal(stored)
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(bytes.NewReader(enc))
	require.ErrorContains(t, err, "deserialize generator")
}

func TestCircuitReadRejectsOutOfRangeConstraintWire(t *testing.T) {
	enc, err := cbor.Marshal(storedCircuit{
		Version:     Version,
		Kinds:       []uint8{uint8(vars.Scalar)},
		Constraints: [][2]uint32{{0, 7}},
	})
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(bytes.NewReader(enc))
	require.ErrorContains(t, err, "out of range")
}

func TestWriterReaderVariableListRoundTrip(t *testing.T) {
	list := []vars.Variable{
		vars.NewVariable(0, vars.Scalar),
		vars.NewVariable(3, vars.Word),
		vars.NewVariable(9, vars.Compressed),
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteVariables(list))
	require.NoError(t, w.WriteUint64(1337))

	r := NewReader(&buf)
	got, err := r.ReadVariables()
	require.NoError(t, err)
	require.Equal(t, list, got)
	v, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1337), v)
}

func TestReaderFailsOnTruncatedInput(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 2, 0}))
	_, err := r.ReadVariables()
	require.Error(t, err)
}

func TestReaderRejectsOversizedWireCount(t *testing.T) {
	// a crafted count must not drive the allocation; the truncated body
	// surfaces as a read error
	r := NewReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}))
	_, err := r.ReadVariables()
	require.Error(t, err)
}

func TestCircuitReadRejectsOversizedWireCountInPayload(t *testing.T) {
	circuit, _, _ := buildDoubleCircuit(t)

	var buf bytes.Buffer
	_, err := circuit.WriteTo(&buf)
	require.NoError(t, err)

	var stored storedCircuit
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &stored))
	require.Len(t, stored.Generators, 1)
	stored.Generators[0].Data = []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}
	enc, err := cbor.Marshal(stored)
	require.NoError(t, err)

	var restored Circuit
	_, err = restored.ReadFrom(bytes.NewReader(enc))
	require.ErrorContains(t, err, "deserialize generator")
}
