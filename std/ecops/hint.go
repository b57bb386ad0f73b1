package ecops

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

const resultHintID = "ecops.ResultHint.v1"

func init() {
	frontend.RegisterHint(resultHintID, deserializeResultHint)
}

// ResultHint computes the result of one batched curve operation with the
// native curve arithmetic. Its output is bound to the request's
// placeholder by the accelerator; for OpIsValid the verification happens
// here and nothing is written back.
type ResultHint struct {
	typ RequestType
}

// NewResultHint returns the hint computing results for the given request
// family.
func NewResultHint(typ RequestType) *ResultHint {
	return &ResultHint{typ: typ}
}

func (h *ResultHint) ID() string { return resultHintID }

func (h *ResultHint) Hint(input, output *vars.ValueStream) error {
	switch h.typ {
	case OpAdd:
		p := readPoint(input)
		q := readPoint(input)
		var r twistededwards.PointAffine
		r.Add(&p, &q)
		writePoint(output, &r)
	case OpScalarMul:
		scalar := input.ReadScalar()
		p := readPoint(input)
		var r twistededwards.PointAffine
		r.ScalarMultiplication(&p, scalar)
		writePoint(output, &r)
	case OpDecompress:
		buf := input.ReadCompressedPoint()
		var r twistededwards.PointAffine
		if err := r.Unmarshal(buf[:]); err != nil {
			return fmt.Errorf("decompress point: %w", err)
		}
		writePoint(output, &r)
	case OpIsValid:
		p := readPoint(input)
		if !p.IsOnCurve() {
			return errors.New("point is not on the curve")
		}
	default:
		return fmt.Errorf("unknown request type %d", h.typ)
	}
	return nil
}

func (h *ResultHint) Serialize(w *frontend.Writer) error {
	return w.WriteUint8(uint8(h.typ))
}

func deserializeResultHint(r *frontend.Reader) (frontend.Hint, error) {
	typ, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if RequestType(typ) > OpIsValid {
		return nil, fmt.Errorf("invalid request type %d", typ)
	}
	return NewResultHint(RequestType(typ)), nil
}

func readPoint(s *vars.ValueStream) twistededwards.PointAffine {
	x, y := s.ReadPoint()
	var p twistededwards.PointAffine
	p.X.SetBigInt(x)
	p.Y.SetBigInt(y)
	return p
}

func writePoint(s *vars.ValueStream, p *twistededwards.PointAffine) {
	var x, y big.Int
	p.X.BigInt(&x)
	p.Y.BigInt(&y)
	s.WritePoint(&x, &y)
}
