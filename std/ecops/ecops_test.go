package ecops

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/solver"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/stretchr/testify/require"
)

func coords(p *twistededwards.PointAffine) (x, y *big.Int) {
	x, y = new(big.Int), new(big.Int)
	p.X.BigInt(x)
	p.Y.BigInt(y)
	return x, y
}

func setPoint(w *vars.Witness, v vars.PointVariable, p *twistededwards.PointAffine) {
	x, y := coords(p)
	w.SetPoint(v, x, y)
}

func requirePointEqual(t *testing.T, w *vars.Witness, v vars.PointVariable, p *twistededwards.PointAffine) {
	t.Helper()
	wantX, wantY := coords(p)
	gotX, gotY := w.GetPoint(v)
	require.Zero(t, gotX.Cmp(wantX))
	require.Zero(t, gotY.Cmp(wantY))
}

func TestRequestConstructorsSetFamily(t *testing.T) {
	var p, q vars.PointVariable
	var s vars.ScalarVariable
	var c vars.CompressedPointVariable

	require.Equal(t, OpAdd, NewAddRequest(p, q).Type())
	require.Equal(t, OpScalarMul, NewScalarMulRequest(s, p).Type())
	require.Equal(t, OpDecompress, NewDecompressRequest(c).Type())
	require.Equal(t, OpIsValid, NewIsValidRequest(p).Type())
}

func TestOperandOrderPerFamily(t *testing.T) {
	b := frontend.NewBuilder()
	p := b.InitPoint()
	q := b.InitPoint()
	s := b.InitScalar()
	c := b.InitCompressedPoint()

	require.Equal(t, append(p.Vars(), q.Vars()...), NewAddRequest(p, q).operands())
	require.Equal(t, append(s.Vars(), p.Vars()...), NewScalarMulRequest(s, p).operands())
	require.Equal(t, c.Vars(), NewDecompressRequest(c).operands())
	require.Equal(t, p.Vars(), NewIsValidRequest(p).operands())
}

func TestAcceleratorBatchesInCallOrder(t *testing.T) {
	b := frontend.NewBuilder()
	p := b.InitPoint()
	q := b.InitPoint()
	s := b.InitScalar()
	c := b.InitCompressedPoint()

	sum := Add(b, p, q)
	mul := ScalarMul(b, s, p)
	dec := Decompress(b, c)
	AssertIsValid(b, p)
	sum2 := Add(b, q, p)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	// one generator per request, two binding constraints per request
	// that hands out a placeholder, none for the validity check
	require.Len(t, circuit.Generators, 5)
	require.Len(t, circuit.Constraints, 8)

	// requests drain in issuance order: generator i carries request i's
	// operand wires
	wantDeps := [][]vars.Variable{
		append(p.Vars(), q.Vars()...),
		append(s.Vars(), p.Vars()...),
		c.Vars(),
		p.Vars(),
		append(q.Vars(), p.Vars()...),
	}
	for i, g := range circuit.Generators {
		require.Equal(t, wantDeps[i], g.Dependencies())
	}
	require.Empty(t, circuit.Generators[3].Outputs())

	// each bound request's constraints pair its hint's output wires with
	// the placeholder handed out at that call site, not any other
	placeholders := []vars.PointVariable{sum, mul, dec, sum2}
	for i, gi := range []int{0, 1, 2, 4} {
		outs := circuit.Generators[gi].Outputs()
		require.Len(t, outs, 2)
		require.Equal(t, frontend.Constraint{A: outs[0], B: placeholders[i].X}, circuit.Constraints[2*i])
		require.Equal(t, frontend.Constraint{A: outs[1], B: placeholders[i].Y}, circuit.Constraints[2*i+1])
	}
}

func TestPushPanicsWithoutResponsePlaceholder(t *testing.T) {
	b := frontend.NewBuilder()
	p := b.InitPoint()
	q := b.InitPoint()

	acc := &Accelerator{}
	require.PanicsWithValue(t, "ecops: request requires a response placeholder", func() {
		acc.push(NewAddRequest(p, q), nil)
	})
}

func TestAssertIsValidAddsNoConstraints(t *testing.T) {
	b := frontend.NewBuilder()
	p := b.InitPoint()
	AssertIsValid(b, p)

	circuit, err := b.Finalize()
	require.NoError(t, err)
	require.Len(t, circuit.Generators, 1)
	require.Empty(t, circuit.Constraints)
}

func TestAddMatchesNativeArithmetic(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()
	base := curve.Base
	var double twistededwards.PointAffine
	double.Add(&base, &base)

	b := frontend.NewBuilder()
	p := b.InitPoint()
	q := b.InitPoint()
	sum := Add(b, p, q)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	w := circuit.NewWitness()
	setPoint(w, p, &base)
	setPoint(w, q, &base)
	require.NoError(t, solver.Solve(context.Background(), circuit, w))
	requirePointEqual(t, w, sum, &double)
}

func TestScalarMulMatchesNativeArithmetic(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()
	base := curve.Base
	scalar := big.NewInt(7)
	var want twistededwards.PointAffine
	want.ScalarMultiplication(&base, scalar)

	b := frontend.NewBuilder()
	s := b.InitScalar()
	p := b.InitPoint()
	result := ScalarMul(b, s, p)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	w := circuit.NewWitness()
	w.SetScalar(s, scalar)
	setPoint(w, p, &base)
	require.NoError(t, solver.Solve(context.Background(), circuit, w))
	requirePointEqual(t, w, result, &want)
}

func TestDecompressRecoversPoint(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()
	base := curve.Base
	var compressed [32]byte
	copy(compressed[:], base.Marshal())

	b := frontend.NewBuilder()
	c := b.InitCompressedPoint()
	result := Decompress(b, c)

	circuit, err := b.Finalize()
	require.NoError(t, err)
	// the single decompression binds exactly one point
	require.Len(t, circuit.Constraints, 2)

	w := circuit.NewWitness()
	w.SetCompressedPoint(c, compressed)
	require.NoError(t, solver.Solve(context.Background(), circuit, w))
	requirePointEqual(t, w, result, &base)
}

func TestAssertIsValidAcceptsCurvePoint(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()
	base := curve.Base

	b := frontend.NewBuilder()
	p := b.InitPoint()
	AssertIsValid(b, p)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	w := circuit.NewWitness()
	setPoint(w, p, &base)
	require.NoError(t, solver.Solve(context.Background(), circuit, w))
}

func TestAssertIsValidRejectsOffCurvePoint(t *testing.T) {
	b := frontend.NewBuilder()
	p := b.InitPoint()
	AssertIsValid(b, p)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	w := circuit.NewWitness()
	w.SetPoint(p, big.NewInt(1), big.NewInt(1))
	err = solver.Solve(context.Background(), circuit, w)
	require.ErrorContains(t, err, resultHintID)
	require.ErrorContains(t, err, "not on the curve")
}

func TestAcceleratedCircuitRoundTrip(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()
	base := curve.Base
	var double twistededwards.PointAffine
	double.Add(&base, &base)

	b := frontend.NewBuilder()
	p := b.InitPoint()
	q := b.InitPoint()
	sum := Add(b, p, q)

	circuit, err := b.Finalize()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = circuit.WriteTo(&buf)
	require.NoError(t, err)

	restored := new(frontend.Circuit)
	_, err = restored.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, circuit.NbWires(), restored.NbWires())

	for _, c := range []*frontend.Circuit{circuit, restored} {
		w := c.NewWitness()
		setPoint(w, p, &base)
		setPoint(w, q, &base)
		require.NoError(t, solver.Solve(context.Background(), c, w))
		requirePointEqual(t, w, sum, &double)
	}
}
