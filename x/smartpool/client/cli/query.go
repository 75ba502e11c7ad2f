package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// RightInfo is a CLI-friendly description of one controller capability
type RightInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetQueryCmd returns the cli query commands for the smartpool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "smartpool",
		Short:                      "Querying commands for the smartpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryRights(),
		CmdQuerySmartPool(),
		CmdQuerySmartPools(),
		CmdQueryGradualUpdate(),
		CmdQueryWhitelist(),
	)

	return cmd
}

// CmdQueryRights returns the command listing the recognized controller rights
func CmdQueryRights() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rights",
		Short: "List the controller capabilities a smart pool can grant",
		RunE: func(cmd *cobra.Command, args []string) error {
			rights := []RightInfo{
				{Name: "pause", Description: "pause and resume public swapping"},
				{Name: "fee", Description: "change the swap fee"},
				{Name: "weights", Description: "change token weights directly or gradually"},
				{Name: "tokens", Description: "add and remove bound tokens"},
				{Name: "whitelist", Description: "restrict liquidity provision to listed addresses"},
				{Name: "cap", Description: "cap the pool share supply"},
			}

			output, _ := json.MarshalIndent(rights, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySmartPool returns the command to query a smart pool
func CmdQuerySmartPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [smart-pool-id]",
		Short: "Query a smart pool by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Smart pool query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/smartpool/v1/pool/{smart_pool_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySmartPools returns the command to query all smart pools
func CmdQuerySmartPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query all smart pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Smart pools query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/smartpool/v1/pools")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryGradualUpdate returns the command to query a scheduled weight update
func CmdQueryGradualUpdate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradual-update [smart-pool-id]",
		Short: "Query the scheduled gradual weight update of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Gradual update query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/smartpool/v1/gradual-update/{smart_pool_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryWhitelist returns the command to query the LP whitelist
func CmdQueryWhitelist() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist [smart-pool-id]",
		Short: "Query the liquidity provider whitelist of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Whitelist query requires running node connection")
			fmt.Println("Use REST API: GET /ammdex/smartpool/v1/whitelist/{smart_pool_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
