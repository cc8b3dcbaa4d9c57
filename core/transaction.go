package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TxStatus wallet transaction lifecycle
type TxStatus string

const (
	// TxStatusIdle nothing submitted
	TxStatusIdle TxStatus = "idle"
	// TxStatusBuilding building the call list
	TxStatusBuilding TxStatus = "building"
	// TxStatusPending broadcast, waiting for receipts
	TxStatusPending TxStatus = "pending"
	// TxStatusSuccess every call mined successfully
	TxStatusSuccess TxStatus = "success"
	// TxStatusError build, broadcast or execution failed
	TxStatusError TxStatus = "error"
)

// TxUpdate status change reported to the caller
type TxUpdate struct {
	TraceID string        `json:"trace_id"`
	Status  TxStatus      `json:"status"`
	Index   int           `json:"index"`
	Hashes  []common.Hash `json:"hashes,omitempty"`
	Err     error         `json:"-"`
}

// TxStatusCallback receives every status transition
type TxStatusCallback func(update TxUpdate)

// ICallSender sign and broadcast one call, wait until it is mined
type ICallSender interface {
	ChainID() *big.Int
	Send(ctx context.Context, call *Call) (common.Hash, error)
	Wait(ctx context.Context, hash common.Hash) error
}

// ITransactionService submit an ordered call list
type ITransactionService interface {
	Submit(ctx context.Context, req *CallRequest, onStatus TxStatusCallback) ([]common.Hash, error)
}
