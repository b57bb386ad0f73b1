package eth

import (
	"fmt"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/ethereum/go-ethereum/common"
)

// Log is the witness value produced by the transaction log generator: the
// emitting address, the first three topics, and the hash of the log data.
type Log struct {
	Address  common.Address
	Topics   [3]common.Hash
	DataHash common.Hash
}

// LogVariable groups the wires holding a fetched log.
type LogVariable struct {
	Address  vars.AddressVariable
	Topics   [3]vars.Bytes32Variable
	DataHash vars.Bytes32Variable
}

func initLogVariable(b *frontend.Builder) LogVariable {
	return LogVariable{
		Address:  b.InitAddress(),
		Topics:   [3]vars.Bytes32Variable{b.InitBytes32(), b.InitBytes32(), b.InitBytes32()},
		DataHash: b.InitBytes32(),
	}
}

// Vars returns the wires of the variable: address, the three topics, then
// the data hash.
func (v LogVariable) Vars() []vars.Variable {
	list := v.Address.Vars()
	for _, t := range v.Topics {
		list = append(list, t.Vars()...)
	}
	return append(list, v.DataHash.Vars()...)
}

// Value reads the log held by the variable's wires.
func (v LogVariable) Value(w *vars.Witness) Log {
	return Log{
		Address: w.GetAddress(v.Address),
		Topics: [3]common.Hash{
			w.GetBytes32(v.Topics[0]),
			w.GetBytes32(v.Topics[1]),
			w.GetBytes32(v.Topics[2]),
		},
		DataHash: w.GetBytes32(v.DataHash),
	}
}

func (v LogVariable) set(w *vars.Witness, l Log) {
	w.SetAddress(v.Address, l.Address)
	for i, t := range v.Topics {
		w.SetBytes32(t, l.Topics[i])
	}
	w.SetBytes32(v.DataHash, l.DataHash)
}

func logVariableFromVars(list []vars.Variable) (LogVariable, error) {
	if len(list) != 5 {
		return LogVariable{}, fmt.Errorf("expected 5 wires, got %d", len(list))
	}
	address, err := vars.AsAddress(list[:1])
	if err != nil {
		return LogVariable{}, err
	}
	v := LogVariable{Address: address}
	for i := 0; i < 3; i++ {
		if v.Topics[i], err = vars.AsBytes32(list[1+i : 2+i]); err != nil {
			return LogVariable{}, err
		}
	}
	if v.DataHash, err = vars.AsBytes32(list[4:5]); err != nil {
		return LogVariable{}, err
	}
	return v, nil
}
