package eth

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/ethereum/go-ethereum/common"
)

const logGeneratorID = "eth.LogGenerator.v1"

func init() {
	frontend.RegisterGenerator(logGeneratorID, deserializeLogGenerator)
}

// LogGenerator fetches a transaction receipt at witness generation time
// and exposes one of its logs. The lookup is by transaction hash; the
// block hash is a declared dependency but is not part of the lookup.
type LogGenerator struct {
	chainID         uint64
	transactionHash vars.Bytes32Variable
	blockHash       vars.Bytes32Variable
	logIndex        uint64
	value           LogVariable
}

// TransactionLog returns wires holding logs[logIndex] of the receipt of
// the given transaction. An index out of range, or a selected log with
// fewer than three topics, fails witness generation.
func TransactionLog(b *frontend.Builder, transactionHash, blockHash vars.Bytes32Variable, logIndex uint64) LogVariable {
	g := &LogGenerator{
		chainID:         b.ChainID(),
		transactionHash: transactionHash,
		blockHash:       blockHash,
		logIndex:        logIndex,
		value:           initLogVariable(b),
	}
	b.Register(g)
	return g.value
}

func (g *LogGenerator) ID() string { return logGeneratorID }

func (g *LogGenerator) Dependencies() []vars.Variable {
	return append(g.transactionHash.Vars(), g.blockHash.Vars()...)
}

func (g *LogGenerator) Outputs() []vars.Variable { return g.value.Vars() }

func (g *LogGenerator) RunOnce(w *vars.Witness) error {
	transactionHash := w.GetBytes32(g.transactionHash)
	// declared dependency, unused in the lookup
	_ = w.GetBytes32(g.blockHash)

	p, err := provider(g.chainID)
	if err != nil {
		return err
	}

	// the fetch blocks this invocation only; the context lives for its
	// duration
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	receipt, err := p.TransactionReceipt(ctx, transactionHash)
	if err != nil {
		return fmt.Errorf("get transaction receipt: %w", err)
	}
	if receipt == nil {
		return fmt.Errorf("no receipt for transaction %s", transactionHash)
	}
	if g.logIndex >= uint64(len(receipt.Logs)) {
		return fmt.Errorf("log index %d out of range, receipt has %d logs", g.logIndex, len(receipt.Logs))
	}
	log := receipt.Logs[g.logIndex]
	if len(log.Topics) < 3 {
		return fmt.Errorf("log %d has %d topics, expected at least 3", g.logIndex, len(log.Topics))
	}

	g.value.set(w, Log{
		Address:  log.Address,
		Topics:   [3]common.Hash{log.Topics[0], log.Topics[1], log.Topics[2]},
		DataHash: common.Hash(sha256.Sum256(log.Data)),
	})
	return nil
}

func (g *LogGenerator) Serialize(w *frontend.Writer) error {
	if err := w.WriteUint64(g.chainID); err != nil {
		return err
	}
	if err := w.WriteVariables(g.transactionHash.Vars()); err != nil {
		return err
	}
	if err := w.WriteVariables(g.blockHash.Vars()); err != nil {
		return err
	}
	if err := w.WriteUint64(g.logIndex); err != nil {
		return err
	}
	return w.WriteVariables(g.value.Vars())
}

func deserializeLogGenerator(r *frontend.Reader) (frontend.Generator, error) {
	chainID, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	list, err := r.ReadVariables()
	if err != nil {
		return nil, err
	}
	transactionHash, err := vars.AsBytes32(list)
	if err != nil {
		return nil, err
	}
	if list, err = r.ReadVariables(); err != nil {
		return nil, err
	}
	blockHash, err := vars.AsBytes32(list)
	if err != nil {
		return nil, err
	}
	logIndex, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if list, err = r.ReadVariables(); err != nil {
		return nil, err
	}
	value, err := logVariableFromVars(list)
	if err != nil {
		return nil, err
	}
	return &LogGenerator{
		chainID:         chainID,
		transactionHash: transactionHash,
		blockHash:       blockHash,
		logIndex:        logIndex,
		value:           value,
	}, nil
}
