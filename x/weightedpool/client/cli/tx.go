package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// GetTxCmd returns the transaction commands for the weightedpool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "weightedpool",
		Short:                      "Weighted pool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdBind(),
		CmdFinalizePool(),
		CmdSetSwapFee(),
		CmdJoinPool(),
		CmdExitPool(),
		CmdSwapExactAmountIn(),
		CmdSwapExactAmountOut(),
		CmdTransferShares(),
	)

	return cmd
}

// CmdCreatePool returns the command to create a new pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a new weighted pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreatePool{
				Creator: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdBind returns the command to bind a token to a pool
func CmdBind() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind [pool-id] [denom] [balance] [weight]",
		Short: "Bind a token to a pool with a balance and weight",
		Long: `Bind a token to a pool with a balance and weight.

Examples:
  ammdexd tx weightedpool bind pool-1 atom 400 10 --from alice
  ammdexd tx weightedpool bind pool-1 osmo 100 10 --from alice`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[2]); err != nil {
				return fmt.Errorf("invalid balance: %v", err)
			}
			if _, err := math.LegacyNewDecFromStr(args[3]); err != nil {
				return fmt.Errorf("invalid weight: %v", err)
			}

			msg := &types.MsgBind{
				Controller: clientCtx.GetFromAddress().String(),
				PoolID:     args[0],
				Denom:      args[1],
				Balance:    args[2],
				Weight:     args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizePool returns the command to finalize a pool
func CmdFinalizePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize [pool-id]",
		Short: "Finalize a pool, opening it to the public",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgFinalizePool{
				Controller: clientCtx.GetFromAddress().String(),
				PoolID:     args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetSwapFee returns the command to set a pool's swap fee
func CmdSetSwapFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-swap-fee [pool-id] [fee]",
		Short: "Set the swap fee of a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[1]); err != nil {
				return fmt.Errorf("invalid fee: %v", err)
			}

			msg := &types.MsgSetSwapFee{
				Controller: clientCtx.GetFromAddress().String(),
				PoolID:     args[0],
				SwapFee:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdJoinPool returns the command to join a pool
func CmdJoinPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [pool-id] [pool-amount-out] [max-amounts-in]",
		Short: "Join a pool by depositing all bound tokens",
		Long: `Join a pool by depositing all bound tokens proportionally.

max-amounts-in is a comma separated list of denom:amount pairs.

Examples:
  ammdexd tx weightedpool join pool-1 40 atom:80,osmo:20 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			maxAmountsIn, err := parseAmountMap(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgJoinPool{
				Sender:        clientCtx.GetFromAddress().String(),
				PoolID:        args[0],
				PoolAmountOut: args[1],
				MaxAmountsIn:  maxAmountsIn,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExitPool returns the command to exit a pool
func CmdExitPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit [pool-id] [pool-amount-in] [min-amounts-out]",
		Short: "Exit a pool by redeeming shares for all bound tokens",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			minAmountsOut, err := parseAmountMap(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgExitPool{
				Sender:        clientCtx.GetFromAddress().String(),
				PoolID:        args[0],
				PoolAmountIn:  args[1],
				MinAmountsOut: minAmountsOut,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactAmountIn returns the command to swap a fixed input amount
func CmdSwapExactAmountIn() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-amount-in [pool-id] [denom-in] [amount-in] [denom-out] [min-amount-out]",
		Short: "Swap a fixed input amount for a minimum output amount",
		Long: `Swap a fixed input amount for a minimum output amount.

Examples:
  ammdexd tx weightedpool swap-exact-amount-in pool-1 atom 10 osmo 2.3 --from alice`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[2]); err != nil {
				return fmt.Errorf("invalid amount: %v", err)
			}

			msg := &types.MsgSwapExactAmountIn{
				Sender:       clientCtx.GetFromAddress().String(),
				PoolID:       args[0],
				DenomIn:      args[1],
				AmountIn:     args[2],
				DenomOut:     args[3],
				MinAmountOut: args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapExactAmountOut returns the command to swap for a fixed output amount
func CmdSwapExactAmountOut() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-amount-out [pool-id] [denom-in] [max-amount-in] [denom-out] [amount-out]",
		Short: "Swap a bounded input amount for a fixed output amount",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[4]); err != nil {
				return fmt.Errorf("invalid amount: %v", err)
			}

			msg := &types.MsgSwapExactAmountOut{
				Sender:      clientCtx.GetFromAddress().String(),
				PoolID:      args[0],
				DenomIn:     args[1],
				MaxAmountIn: args[2],
				DenomOut:    args[3],
				AmountOut:   args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferShares returns the command to transfer pool shares
func CmdTransferShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-shares [pool-id] [recipient] [amount]",
		Short: "Transfer pool shares to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[2]); err != nil {
				return fmt.Errorf("invalid amount: %v", err)
			}

			msg := &types.MsgTransferShares{
				Sender:    clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				Recipient: args[1],
				Amount:    args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// parseAmountMap parses a comma separated list of denom:amount pairs
func parseAmountMap(s string) (map[string]string, error) {
	amounts := make(map[string]string)
	if s == "" {
		return amounts, nil
	}
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid amount pair: %s (use 'denom:amount')", pair)
		}
		if _, err := math.LegacyNewDecFromStr(parts[1]); err != nil {
			return nil, fmt.Errorf("invalid amount for %s: %v", parts[0], err)
		}
		amounts[parts[0]] = parts[1]
	}
	return amounts, nil
}
