package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	storageKeyGeneratorID = "eth.StorageKeyGenerator.v1"
	storageProofHintID    = "eth.StorageProofHint.v1"
)

func init() {
	frontend.RegisterGenerator(storageKeyGeneratorID, deserializeStorageKeyGenerator)
	frontend.RegisterAsyncHint(storageProofHintID, deserializeStorageProofHint)
}

// StorageKeyGenerator derives the storage slot of mapping[mapKey] for a
// mapping rooted at mappingLocation, the way the EVM lays out mapping
// entries: keccak256(key ++ slot). Pure, no I/O.
type StorageKeyGenerator struct {
	mappingLocation vars.U256Variable
	mapKey          vars.Bytes32Variable
	value           vars.Bytes32Variable
}

// MappingStorageLocation returns a wire holding the storage slot of
// mapping[mapKey].
func MappingStorageLocation(b *frontend.Builder, mappingLocation vars.U256Variable, mapKey vars.Bytes32Variable) vars.Bytes32Variable {
	g := &StorageKeyGenerator{
		mappingLocation: mappingLocation,
		mapKey:          mapKey,
		value:           b.InitBytes32(),
	}
	b.Register(g)
	return g.value
}

func (g *StorageKeyGenerator) ID() string { return storageKeyGeneratorID }

func (g *StorageKeyGenerator) Dependencies() []vars.Variable {
	return append(g.mappingLocation.Vars(), g.mapKey.Vars()...)
}

func (g *StorageKeyGenerator) Outputs() []vars.Variable { return g.value.Vars() }

func (g *StorageKeyGenerator) RunOnce(w *vars.Witness) error {
	location := w.GetU256(g.mappingLocation)
	key := w.GetBytes32(g.mapKey)

	slot := crypto.Keccak256Hash(key.Bytes(), common.BigToHash(location).Bytes())
	w.SetBytes32(g.value, slot)
	return nil
}

func (g *StorageKeyGenerator) Serialize(w *frontend.Writer) error {
	if err := w.WriteVariables(g.mappingLocation.Vars()); err != nil {
		return err
	}
	if err := w.WriteVariables(g.mapKey.Vars()); err != nil {
		return err
	}
	return w.WriteVariables(g.value.Vars())
}

func deserializeStorageKeyGenerator(r *frontend.Reader) (frontend.Generator, error) {
	list, err := r.ReadVariables()
	if err != nil {
		return nil, err
	}
	mappingLocation, err := vars.AsU256(list)
	if err != nil {
		return nil, err
	}
	if list, err = r.ReadVariables(); err != nil {
		return nil, err
	}
	mapKey, err := vars.AsBytes32(list)
	if err != nil {
		return nil, err
	}
	if list, err = r.ReadVariables(); err != nil {
		return nil, err
	}
	value, err := vars.AsBytes32(list)
	if err != nil {
		return nil, err
	}
	return &StorageKeyGenerator{mappingLocation: mappingLocation, mapKey: mapKey, value: value}, nil
}

// StorageProofHint fetches, at witness generation time, the value of a
// storage slot pinned to a block hash. The provider's answer is trusted.
type StorageProofHint struct {
	chainID uint64
}

// StorageValue returns a wire holding the value of the storage slot at
// location of the given account, at the block with the given hash.
func StorageValue(b *frontend.Builder, blockHash vars.Bytes32Variable, address vars.AddressVariable, location vars.Bytes32Variable) vars.Bytes32Variable {
	input := vars.NewVariableStream()
	input.Write(blockHash.Vars()...)
	input.Write(address.Vars()...)
	input.Write(location.Vars()...)
	output := b.AsyncHint(input, &StorageProofHint{chainID: b.ChainID()})
	return output.ReadBytes32()
}

func (h *StorageProofHint) ID() string { return storageProofHintID }

func (h *StorageProofHint) Hint(ctx context.Context, input, output *vars.ValueStream) error {
	blockHash := input.ReadWord()
	address := input.ReadAddress()
	location := input.ReadWord()

	p, err := provider(h.chainID)
	if err != nil {
		return err
	}
	proof, err := p.ProofAt(ctx, address, location, blockHash)
	if err != nil {
		return fmt.Errorf("get proof: %w", err)
	}
	if len(proof.StorageProof) == 0 {
		return fmt.Errorf("no storage proof returned for slot %s", location)
	}
	value := new(big.Int)
	if proof.StorageProof[0].Value != nil {
		value = (*big.Int)(proof.StorageProof[0].Value)
	}
	output.WriteWord(common.BigToHash(value))
	return nil
}

func (h *StorageProofHint) Serialize(w *frontend.Writer) error {
	return w.WriteUint64(h.chainID)
}

func deserializeStorageProofHint(r *frontend.Reader) (frontend.AsyncHint, error) {
	chainID, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &StorageProofHint{chainID: chainID}, nil
}
