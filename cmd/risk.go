package cmd

import (
	"encoding/json"

	"vcop/core"
	"vcop/internal/risk"
	"vcop/pkg/number"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "evaluate the risk estimator",
	Example: `vcop risk --collateral USDC --collateral-amount 100 --loan-amount 50 --collateral-price 1 --loan-price 1
vcop risk --collateral WETH --collateral-amount 1 --loan-amount 8000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var input core.RiskInput
		input.Collateral, _ = cmd.Flags().GetString("collateral")
		input.Loan, _ = cmd.Flags().GetString("loan")
		input.CollateralAmount, _ = cmd.Flags().GetString("collateral-amount")
		input.LoanAmount, _ = cmd.Flags().GetString("loan-amount")
		input.InterestRate, _ = cmd.Flags().GetString("interest-rate")
		if input.Loan == "" {
			input.Loan = cfg.App.StableSymbol
		}

		collateralPrice, _ := cmd.Flags().GetString("collateral-price")
		loanPrice, _ := cmd.Flags().GetString("loan-price")

		var (
			metrics *core.RiskMetrics
			err     error
		)

		assets := provideAssetService()
		if collateralPrice != "" && loanPrice != "" {
			metrics, err = estimateWithPrices(cmd, assets, &input, collateralPrice, loanPrice)
		} else {
			client := provideEthClient(ctx)
			defer client.Close()

			prices := providePriceService(provideChainService(client), nil)
			metrics, err = provideRiskService(assets, prices).Estimate(ctx, &input)
		}

		if err != nil {
			return err
		}

		if metrics == nil {
			cmd.Println("incomplete input, no metrics")
			return nil
		}

		data, _ := json.MarshalIndent(metrics, "", "  ")
		cmd.Println(string(data))
		return nil
	},
}

func estimateWithPrices(cmd *cobra.Command, assets core.IAssetService, input *core.RiskInput, collateralPrice, loanPrice string) (*core.RiskMetrics, error) {
	ctx := cmd.Context()

	collateral, err := assets.FindBySymbol(ctx, input.Collateral)
	if err != nil {
		return nil, err
	}

	loan, err := assets.FindBySymbol(ctx, input.Loan)
	if err != nil {
		return nil, err
	}

	in, err := risk.ParseInput(input, collateral, loan)
	if err != nil || in == nil {
		return nil, err
	}

	var prices risk.Prices
	if prices.Collateral, err = number.Parse(collateralPrice); err != nil {
		return nil, err
	}

	if prices.Loan, err = number.Parse(loanPrice); err != nil {
		return nil, err
	}

	return risk.Calculate(in, prices, provideRiskParameters())
}

func init() {
	rootCmd.AddCommand(riskCmd)

	flags := riskCmd.Flags()
	flags.String("collateral", "", "collateral symbol")
	flags.String("loan", "", "loan symbol, default the stable symbol")
	flags.String("collateral-amount", "", "collateral amount")
	flags.String("loan-amount", "", "loan amount")
	flags.String("interest-rate", "0", "annual interest rate in percent")
	flags.String("collateral-price", "", "collateral usd price, skips the price sources")
	flags.String("loan-price", "", "loan usd price, skips the price sources")
}
