package ethereum

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/txpool"
)

// CancelGasLimit is the intrinsic gas of a plain value transfer
const CancelGasLimit = 21000

var (
	ErrMissingRPCURL       = errors.New("ethereum rpc_url is not configured")
	ErrMissingPrivateKey   = errors.New("ethereum private_key is not configured")
	ErrChainIDMismatch     = errors.New("chain id mismatch")
	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrTransactionReverted = errors.New("transaction reverted")
	ErrNoCode              = errors.New("no contract code at address")
	ErrUnlinkedArtifact    = errors.New("artifact has unlinked library references")
	ErrEmptyBytecode       = errors.New("artifact has no bytecode")
	ErrArgumentCount       = errors.New("wrong number of arguments")
	ErrUnsupportedArgType  = errors.New("unsupported argument type")
)

// rejections are the node answers that guarantee a transaction was not accepted into the pool
var rejections = []error{
	core.ErrNonceTooLow,
	core.ErrNonceMax,
	core.ErrInsufficientFunds,
	core.ErrIntrinsicGas,
	core.ErrFeeCapTooLow,
	txpool.ErrInvalidSender,
	txpool.ErrUnderpriced,
	txpool.ErrReplaceUnderpriced,
	txpool.ErrTxGasPriceTooLow,
	txpool.ErrGasLimit,
	txpool.ErrNegativeValue,
	txpool.ErrOversizedData,
}

// IsRejected reports whether a broadcast error means the node refused the transaction.
// Errors crossing JSON-RPC lose their identity, so the message is matched as well.
// Timeouts and transport failures are not rejections: the transaction may still be mined.
func IsRejected(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, r := range rejections {
		if errors.Is(err, r) || strings.Contains(msg, r.Error()) {
			return true
		}
	}
	return false
}
