package cmd

import (
	"sync"
	"time"

	"vcop/worker"
	"vcop/worker/monitor"
	"vcop/worker/priceoracle"
	"vcop/worker/psm"

	"github.com/drone/signal"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "vcop polling workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		client := provideEthClient(ctx)
		defer client.Close()

		psmStore := providePSMStore(database)

		chainService := provideChainService(client)
		assetService := provideAssetService()
		priceService := providePriceService(chainService, providePriceStore(database))
		positionService := providePositionService(chainService, assetService, priceService)
		psmService := providePSMService(chainService, psmStore, assetService)

		owners := make([]common.Address, 0, len(cfg.Worker.Watch))
		for _, owner := range cfg.Worker.Watch {
			if !common.IsHexAddress(owner) {
				log.Panicln("invalid watched owner", owner)
			}

			owners = append(owners, common.HexToAddress(owner))
		}

		seconds := func(v int64) time.Duration {
			return time.Duration(v) * time.Second
		}

		workers := []worker.Worker{
			priceoracle.New(seconds(cfg.Worker.PriceInterval), assetService, priceService),
			psm.New(seconds(cfg.Worker.PSMInterval), psmService, psmStore),
			monitor.New(seconds(cfg.Worker.MonitorInterval), positionService, owners),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				if err := w.Run(ctx); err != nil {
					log.WithError(err).Errorln("worker stopped")
				}
			}(w)
		}

		wg.Wait()
		log.Infoln("workers stopped")
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
