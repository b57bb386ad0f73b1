// Package eth provides generators bringing Ethereum chain state into a
// circuit: mapping storage slot derivation, storage value fetches pinned
// to a block hash, and transaction log fetches.
package eth

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Cristian13432/succinctx/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// StorageResult is one entry of an eth_getProof storageProof list.
type StorageResult struct {
	Key   string       `json:"key"`
	Value *hexutil.Big `json:"value"`
	Proof []string     `json:"proof"`
}

// ProofResult is the eth_getProof response for one account.
type ProofResult struct {
	Address      common.Address  `json:"address"`
	StorageHash  common.Hash     `json:"storageHash"`
	StorageProof []StorageResult `json:"storageProof"`
}

// Provider is the chain data source consumed by the generators in this
// package. Responses are trusted as returned; no inclusion proof is
// re-verified here.
type Provider interface {
	// ProofAt fetches a storage proof for key, pinned to the block with
	// the given hash.
	ProofAt(ctx context.Context, account common.Address, key common.Hash, blockHash common.Hash) (*ProofResult, error)

	// TransactionReceipt fetches the receipt of the given transaction.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type rpcProvider struct {
	c  *rpc.Client
	ec *ethclient.Client
}

// Dial connects a Provider to an Ethereum JSON-RPC endpoint.
func Dial(rawurl string) (Provider, error) {
	c, err := rpc.Dial(rawurl)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawurl, err)
	}
	return &rpcProvider{c: c, ec: ethclient.NewClient(c)}, nil
}

func (p *rpcProvider) ProofAt(ctx context.Context, account common.Address, key common.Hash, blockHash common.Hash) (*ProofResult, error) {
	var res ProofResult
	err := p.c.CallContext(ctx, &res, "eth_getProof", account, []common.Hash{key}, rpc.BlockNumberOrHashWithHash(blockHash, false))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (p *rpcProvider) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return p.ec.TransactionReceipt(ctx, txHash)
}

var (
	providersM sync.Mutex
	providers  = make(map[uint64]Provider)
)

// SetProvider installs the provider used for chainID, overriding the
// RPC_<chainID> environment lookup. Tests use this to install in-memory
// providers.
func SetProvider(chainID uint64, p Provider) {
	providersM.Lock()
	defer providersM.Unlock()
	providers[chainID] = p
}

// provider returns the provider registered for chainID, dialing the
// endpoint named by the RPC_<chainID> environment variable on first use.
func provider(chainID uint64) (Provider, error) {
	providersM.Lock()
	defer providersM.Unlock()
	if p, ok := providers[chainID]; ok {
		return p, nil
	}
	env := fmt.Sprintf("RPC_%d", chainID)
	url := os.Getenv(env)
	if url == "" {
		return nil, fmt.Errorf("no provider for chain %d: %s is not set", chainID, env)
	}
	log := logger.Logger()
	log.Info().Uint64("chainID", chainID).Msg("dialing rpc provider")
	p, err := Dial(url)
	if err != nil {
		return nil, err
	}
	providers[chainID] = p
	return p, nil
}
