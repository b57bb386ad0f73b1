package ecops

import (
	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/logger"
	"github.com/Cristian13432/succinctx/vars"
)

// Accelerator aggregates the curve operation requests issued during one
// circuit build, together with the placeholder results handed out at
// issuance. It is created on the first accelerated call, cached on the
// builder, and consumed once at finalization.
type Accelerator struct {
	requests  []*Request
	responses []*vars.PointVariable
}

type acceleratorKey struct{}

func getCached(b *frontend.Builder) *Accelerator {
	if v := b.GetKeyValue(acceleratorKey{}); v != nil {
		acc, ok := v.(*Accelerator)
		if !ok {
			panic("stored accelerator is of invalid type")
		}
		return acc
	}
	acc := &Accelerator{}
	b.SetKeyValue(acceleratorKey{}, acc)
	b.Defer(acc.drain)
	return acc
}

// push appends a request and its placeholder in call order. Every request
// family except OpIsValid requires a placeholder; a missing one is a
// construction defect and panics at the call site, not at finalization.
func (a *Accelerator) push(req *Request, response *vars.PointVariable) {
	if req.Type() != OpIsValid && response == nil {
		panic("ecops: request requires a response placeholder")
	}
	a.requests = append(a.requests, req)
	a.responses = append(a.responses, response)
}

// drain emits one batched result hint per request, in insertion order, and
// binds each returned point to the placeholder handed out at issuance.
// Insertion order keeps identical construction code yielding an identical
// circuit.
func (a *Accelerator) drain(b *frontend.Builder) error {
	log := logger.Logger()
	log.Debug().Int("requests", len(a.requests)).Msg("draining curve op accelerator")

	for i, req := range a.requests {
		input := vars.NewVariableStream()
		input.Write(req.operands()...)
		output := b.Hint(input, NewResultHint(req.Type()))

		switch req.Type() {
		case OpAdd, OpScalarMul, OpDecompress:
			result := output.ReadPoint()
			response := a.responses[i]
			if response == nil {
				panic("ecops: missing response placeholder")
			}
			b.AssertPointsEqual(result, *response)
		case OpIsValid:
			// verified inside the hint, nothing to read back
		}
	}
	return nil
}

// Add returns a placeholder for p + q and defers the addition.
func Add(b *frontend.Builder, p, q vars.PointVariable) vars.PointVariable {
	response := b.InitPoint()
	getCached(b).push(NewAddRequest(p, q), &response)
	return response
}

// ScalarMul returns a placeholder for scalar * p and defers the
// multiplication.
func ScalarMul(b *frontend.Builder, scalar vars.ScalarVariable, p vars.PointVariable) vars.PointVariable {
	response := b.InitPoint()
	getCached(b).push(NewScalarMulRequest(scalar, p), &response)
	return response
}

// Decompress returns a placeholder for the decompression of c and defers
// the computation.
func Decompress(b *frontend.Builder, c vars.CompressedPointVariable) vars.PointVariable {
	response := b.InitPoint()
	getCached(b).push(NewDecompressRequest(c), &response)
	return response
}

// AssertIsValid defers an on-curve check of p. No placeholder is handed
// out; the check happens inside the batched hint.
func AssertIsValid(b *frontend.Builder, p vars.PointVariable) {
	getCached(b).push(NewIsValidRequest(p), nil)
}
