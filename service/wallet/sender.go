package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"vcop/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fox-one/pkg/logger"
)

// Client the subset of ethclient used to sign, broadcast and track calls
type Client interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}

type keySender struct {
	client   Client
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	from     common.Address
	interval time.Duration
}

// ParseKey hex private key with or without 0x
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: private key", core.ErrSenderNotConfigured)
	}

	return key, nil
}

// NewSender sign with a local key, poll receipts every interval
func NewSender(client Client, chainID *big.Int, key *ecdsa.PrivateKey, interval time.Duration) core.ICallSender {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &keySender{
		client:   client,
		chainID:  chainID,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		interval: interval,
	}
}

func (s *keySender) ChainID() *big.Int {
	return s.chainID
}

func (s *keySender) Send(ctx context.Context, call *core.Call) (common.Hash, error) {
	nonce, err := s.client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas price: %w", err)
	}

	to := call.To
	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.from,
		To:    &to,
		Value: call.ValueInt(),
		Data:  call.Data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas of %s: %w", call.Method, err)
	}

	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    call.ValueInt(),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     call.Data,
	})

	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(s.chainID), s.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}

	logger.FromContext(ctx).WithField("hash", signed.Hash().Hex()).
		WithField("nonce", nonce).
		Debugln("tx sent", call.Method)

	return signed.Hash(), nil
}

func (s *keySender) Wait(ctx context.Context, hash common.Hash) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		receipt, err := s.client.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != ethtypes.ReceiptStatusSuccessful {
				return fmt.Errorf("%w: %s", core.ErrTransactionReverted, hash.Hex())
			}

			return nil
		case !errors.Is(err, ethereum.NotFound):
			return fmt.Errorf("receipt %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
