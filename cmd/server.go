package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vcop/handler"
	"vcop/handler/hc"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run vcop api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		client := provideEthClient(ctx)
		defer client.Close()

		chainService := provideChainService(client)
		assetService := provideAssetService()
		priceService := providePriceService(chainService, providePriceStore(database))
		preferenceService := providePreferenceService(providePropertyStore(database))
		if err := preferenceService.Init(ctx); err != nil {
			log.WithError(err).Errorln("init preferences, defaults used")
		}

		server := handler.New(
			assetService,
			priceService,
			provideRiskService(assetService, priceService),
			providePositionService(chainService, assetService, priceService),
			providePSMService(chainService, providePSMStore(database), assetService),
			provideCallService(provideCallBuilder(assetService), chainService, assetService),
			preferenceService,
		)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, map[string]hc.Pinger{
				"db": hc.PingFunc(func() error {
					return database.Update().DB().Ping()
				}),
				"chain": hc.PingFunc(func() error {
					ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
					defer cancel()

					_, err := client.ChainID(ctx)
					return err
				}),
			}))
		}

		{
			//metrics
			mux.Handle("/metrics", promhttp.Handler())
		}

		{
			//restful api
			mux.Mount("/api", server.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		svr := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := svr.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := svr.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
