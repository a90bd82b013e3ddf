package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Artifact is a compiled contract: its ABI and creation bytecode
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

type artifactFile struct {
	ContractName   string                     `json:"contractName"`
	ABI            json.RawMessage            `json:"abi"`
	Bytecode       json.RawMessage            `json:"bytecode"`
	LinkReferences map[string]json.RawMessage `json:"linkReferences"`
}

// foundry nests the bytecode under "object"
type bytecodeObject struct {
	Object         string                     `json:"object"`
	LinkReferences map[string]json.RawMessage `json:"linkReferences"`
}

// LoadArtifact reads a Hardhat (or Foundry) artifact JSON file
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	art, err := ParseArtifact(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return art, nil
}

// ParseArtifact decodes artifact JSON
func ParseArtifact(raw []byte) (*Artifact, error) {
	var f artifactFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if len(f.LinkReferences) > 0 {
		return nil, ErrUnlinkedArtifact
	}

	parsed, err := abi.JSON(bytes.NewReader(f.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi: %w", err)
	}

	var code string
	trimmed := bytes.TrimSpace(f.Bytecode)
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, &code); err != nil {
			return nil, fmt.Errorf("invalid bytecode: %w", err)
		}
	default:
		var obj bytecodeObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("invalid bytecode: %w", err)
		}
		if len(obj.LinkReferences) > 0 {
			return nil, ErrUnlinkedArtifact
		}
		code = obj.Object
	}
	if !has0xPrefix(code) {
		code = "0x" + code
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if len(bytecode) == 0 {
		return nil, ErrEmptyBytecode
	}

	return &Artifact{Name: f.ContractName, ABI: parsed, Bytecode: bytecode}, nil
}

// ConstructorArgs converts string arguments to the constructor's ABI types
func (a *Artifact) ConstructorArgs(args []string) ([]any, error) {
	values, err := ConvertArgs(a.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", a.Name, err)
	}
	return values, nil
}

// PackMethod encodes a call to method with arguments given as strings
func (a *Artifact) PackMethod(method string, args []string) ([]byte, error) {
	m, ok := a.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %q not found in %s abi", method, a.Name)
	}
	values, err := ConvertArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return a.ABI.Pack(method, values...)
}

// DeployResult is the outcome of a mined deployment
type DeployResult struct {
	Address common.Address
	Tx      *types.Transaction
	Receipt *types.Receipt
}

// Deploy deploys art with constructor values already converted to ABI types,
// waits for the receipt and checks that code landed at the new address.
func (c *Client) Deploy(ctx context.Context, art *Artifact, params ...any) (*DeployResult, error) {
	auth, err := c.GetTransactor(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(auth, art.ABI, art.Bytecode, c.backend, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", art.Name, err)
	}
	c.logger.Info("Deployment submitted",
		zap.String("contract", art.Name),
		zap.String("address", address.Hex()),
		zap.String("tx_hash", tx.Hash().Hex()))

	receipt, err := c.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}

	ok, err := c.HasCode(ctx, address)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCode, address.Hex())
	}

	c.logger.Info("Contract deployed",
		zap.String("contract", art.Name),
		zap.String("address", address.Hex()),
		zap.Uint64("gas_used", receipt.GasUsed),
		zap.Uint64("block", receipt.BlockNumber.Uint64()))

	return &DeployResult{Address: address, Tx: tx, Receipt: receipt}, nil
}

// EstimateDeploy estimates the gas of deploying art with the given params
func (c *Client) EstimateDeploy(ctx context.Context, art *Artifact, params ...any) (uint64, error) {
	input, err := art.ABI.Pack("", params...)
	if err != nil {
		return 0, fmt.Errorf("failed to pack constructor: %w", err)
	}
	data := append(append([]byte{}, art.Bytecode...), input...)
	return c.estimateCreate(ctx, data)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
