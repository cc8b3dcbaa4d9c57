package wallet

import (
	"context"
	"fmt"

	"vcop/core"
	"vcop/pkg/id"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type transactionService struct {
	calls  core.ICallService
	sender core.ICallSender
}

// New new transaction service
func New(calls core.ICallService, sender core.ICallSender) core.ITransactionService {
	return &transactionService{
		calls:  calls,
		sender: sender,
	}
}

// Submit build the call list then send each call in order, waiting for its
// receipt before the next one. Failures are reported once through onStatus
// and never retried.
func (s *transactionService) Submit(ctx context.Context, req *core.CallRequest, onStatus core.TxStatusCallback) ([]common.Hash, error) {
	traceID := id.GenTraceID()
	ctx = logger.WithContext(ctx, logger.FromContext(ctx).WithField("trace", traceID).WithField("action", req.Action))
	log := logger.FromContext(ctx)

	if onStatus == nil {
		onStatus = func(core.TxUpdate) {}
	}

	var hashes []common.Hash
	notify := func(status core.TxStatus, index int, err error) {
		onStatus(core.TxUpdate{
			TraceID: traceID,
			Status:  status,
			Index:   index,
			Hashes:  append([]common.Hash(nil), hashes...),
			Err:     err,
		})
	}

	fail := func(index int, err error) ([]common.Hash, error) {
		log.WithError(err).Errorln("submit failed at call", index)
		notify(core.TxStatusError, index, err)
		return hashes, err
	}

	if s.sender == nil {
		return fail(0, core.ErrSenderNotConfigured)
	}

	notify(core.TxStatusBuilding, 0, nil)
	list, err := s.calls.Build(ctx, req)
	if err != nil {
		return fail(0, err)
	}

	for idx, call := range list {
		log.WithField("call", id.SubTraceID(traceID, idx)).Debugln("send", call.Method)

		hash, err := s.sender.Send(ctx, call)
		if err != nil {
			return fail(idx, fmt.Errorf("%s: %w", call.Method, err))
		}

		hashes = append(hashes, hash)
		notify(core.TxStatusPending, idx, nil)

		if err := s.sender.Wait(ctx, hash); err != nil {
			return fail(idx, fmt.Errorf("%s: %w", call.Method, err))
		}
	}

	notify(core.TxStatusSuccess, len(list)-1, nil)
	log.WithField("calls", len(list)).Infoln("submitted")
	return hashes, nil
}
