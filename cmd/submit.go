package cmd

import (
	"vcop/core"
	"vcop/service/wallet"

	"github.com/drone/signal"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <action>",
	Short: "build an action and send its calls with the configured key",
	Args:  actionArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)

		client := provideEthClient(ctx)
		defer client.Close()

		sender := provideSender(client)
		if sender == nil {
			return core.ErrSenderNotConfigured
		}

		req := callRequestFromFlags(cmd, args[0])
		if req.Owner == "" {
			key, err := wallet.ParseKey(cfg.Chain.PrivateKey)
			if err != nil {
				return err
			}

			req.Owner = crypto.PubkeyToAddress(key.PublicKey).Hex()
		}

		chainService := provideChainService(client)
		assets := provideAssetService()
		calls := provideCallService(provideCallBuilder(assets), chainService, assets)

		hashes, err := provideTransactionService(calls, sender).Submit(ctx, req, func(u core.TxUpdate) {
			entry := log.WithField("trace", u.TraceID).WithField("index", u.Index)
			if u.Err != nil {
				entry.WithError(u.Err).Errorln(u.Status)
				return
			}

			entry.Infoln(u.Status, u.Hashes)
		})
		if err != nil {
			return err
		}

		for _, hash := range hashes {
			cmd.Println(hash.Hex())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	addCallFlags(submitCmd)
}
