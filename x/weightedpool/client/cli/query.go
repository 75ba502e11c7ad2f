package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// PoolLimits is a CLI-friendly view of the pool parameter bounds
type PoolLimits struct {
	MinBoundTokens int    `json:"min_bound_tokens"`
	MaxBoundTokens int    `json:"max_bound_tokens"`
	MinWeight      string `json:"min_weight"`
	MaxWeight      string `json:"max_weight"`
	MaxTotalWeight string `json:"max_total_weight"`
	MinSwapFee     string `json:"min_swap_fee"`
	MaxSwapFee     string `json:"max_swap_fee"`
	MinBalance     string `json:"min_balance"`
	InitPoolSupply string `json:"init_pool_supply"`
	MaxInRatio     string `json:"max_in_ratio"`
	MaxOutRatio    string `json:"max_out_ratio"`
	ExitFee        string `json:"exit_fee"`
}

// GetQueryCmd returns the cli query commands for the weightedpool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "weightedpool",
		Short:                      "Querying commands for the weightedpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryLimits(),
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQuerySpotPrice(),
		CmdQueryShares(),
	)

	return cmd
}

// CmdQueryLimits returns the command to query pool parameter limits
func CmdQueryLimits() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Query pool parameter limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			limits := PoolLimits{
				MinBoundTokens: types.MinBoundTokens,
				MaxBoundTokens: types.MaxBoundTokens,
				MinWeight:      types.MinWeight.String(),
				MaxWeight:      types.MaxWeight.String(),
				MaxTotalWeight: types.MaxTotalWeight.String(),
				MinSwapFee:     types.MinSwapFee.String(),
				MaxSwapFee:     types.MaxSwapFee.String(),
				MinBalance:     types.MinBalance.String(),
				InitPoolSupply: types.InitPoolSupply.String(),
				MaxInRatio:     types.MaxInRatio.String(),
				MaxOutRatio:    types.MaxOutRatio.String(),
				ExitFee:        types.ExitFee.String(),
			}

			output, _ := json.MarshalIndent(limits, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPool returns the command to query a pool
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a pool by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pool query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/weightedpool/v1/pool/{pool_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPools returns the command to query all pools
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query all pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pools query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/weightedpool/v1/pools")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySpotPrice returns the command to query a spot price
func CmdQuerySpotPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spot-price [pool-id] [denom-in] [denom-out]",
		Short: "Query the spot price between two bound tokens",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Spot price query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/weightedpool/v1/spot-price/{pool_id}/{denom_in}/{denom_out}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryShares returns the command to query a share balance
func CmdQueryShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares [pool-id] [address]",
		Short: "Query an address's share balance in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Share balance query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/weightedpool/v1/shares/{pool_id}/{address}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
