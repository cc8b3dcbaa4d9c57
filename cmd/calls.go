package cmd

import (
	"encoding/json"
	"fmt"

	"vcop/core"
	"vcop/handler/views"
	"vcop/pkg/id"

	"github.com/spf13/cobra"
)

func actionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}

	for _, action := range core.Actions {
		if string(action) == args[0] {
			return nil
		}
	}

	return fmt.Errorf("unknown action %q, one of %v", args[0], core.Actions)
}

func callRequestFromFlags(cmd *cobra.Command, action string) *core.CallRequest {
	req := &core.CallRequest{Action: core.Action(action)}
	req.Owner, _ = cmd.Flags().GetString("owner")
	req.PositionID, _ = cmd.Flags().GetString("position")
	req.Collateral, _ = cmd.Flags().GetString("collateral")
	req.Amount, _ = cmd.Flags().GetString("amount")
	req.MintAmount, _ = cmd.Flags().GetString("mint")
	return req
}

func addCallFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("owner", "", "wallet address, its allowance decides the approve call")
	flags.String("position", "", "position id")
	flags.String("collateral", "", "collateral symbol, default the psm collateral")
	flags.String("amount", "", "amount in token units")
	flags.String("mint", "", "vcop to mint, create-position only")
}

var callsCmd = &cobra.Command{
	Use:   "calls <action>",
	Short: "print the ordered contract calls of an action",
	Args:  actionArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req := callRequestFromFlags(cmd, args[0])

		assets := provideAssetService()
		var chainService core.IChainService
		if req.Owner != "" {
			client := provideEthClient(ctx)
			defer client.Close()

			chainService = provideChainService(client)
		}

		list, err := provideCallService(provideCallBuilder(assets), chainService, assets).Build(ctx, req)
		if err != nil {
			return err
		}

		data, _ := json.MarshalIndent(views.CallBundle{
			ID:     id.BundleID(list),
			Action: req.Action,
			Calls:  list,
		}, "", "  ")
		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callsCmd)
	addCallFlags(callsCmd)
}
