package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// GetTxCmd returns the transaction commands for the smartpool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "smartpool",
		Short:                      "Smart pool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateSmartPool(),
		CmdCreatePool(),
		CmdSetCap(),
		CmdUpdateWeightsGradually(),
		CmdPokeWeights(),
		CmdCommitAddToken(),
		CmdApplyAddToken(),
		CmdRemoveToken(),
		CmdWhitelistLP(),
		CmdJoinPool(),
		CmdExitPool(),
	)

	return cmd
}

// CmdCreateSmartPool returns the command to configure a new smart pool
func CmdCreateSmartPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [denoms] [balances] [weights] [swap-fee] [rights] [min-weight-change-period] [add-token-time-lock]",
		Short: "Configure a new smart pool",
		Long: `Configure a new smart pool. The pool holds no funds until it is
instantiated with create-pool.

denoms, balances and weights are comma separated lists of equal length.
rights is a comma separated list of controller capabilities, or 'all' or
'none'. Recognized capabilities: pause, fee, weights, tokens, whitelist, cap.

Examples:
  ammdexd tx smartpool create atom,osmo 400,100 10,10 0.003 all 10 5 --from alice
  ammdexd tx smartpool create atom,osmo,juno 400,1,4 10,10,20 0.0015 fee,weights 10 5 --from alice`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			denoms := strings.Split(args[0], ",")
			balances := strings.Split(args[1], ",")
			weights := strings.Split(args[2], ",")

			rights, err := parseRights(args[4])
			if err != nil {
				return err
			}

			minPeriod, err := strconv.ParseInt(args[5], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid min-weight-change-period: %v", err)
			}
			tokenLock, err := strconv.ParseInt(args[6], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid add-token-time-lock: %v", err)
			}

			msg := &types.MsgCreateSmartPool{
				Creator:                        clientCtx.GetFromAddress().String(),
				Denoms:                         denoms,
				Balances:                       balances,
				Weights:                        weights,
				SwapFee:                        args[3],
				Rights:                         rights,
				MinimumWeightChangeBlockPeriod: minPeriod,
				AddTokenTimeLockInBlocks:       tokenLock,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCreatePool returns the command to instantiate a configured smart pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [smart-pool-id] [initial-supply]",
		Short: "Instantiate a configured smart pool, pulling its seed balances",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[1]); err != nil {
				return fmt.Errorf("invalid initial supply: %v", err)
			}

			msg := &types.MsgCreatePool{
				Controller:    clientCtx.GetFromAddress().String(),
				SmartPoolID:   args[0],
				InitialSupply: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetCap returns the command to set the share supply cap
func CmdSetCap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cap [smart-pool-id] [cap]",
		Short: "Set the pool share supply cap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			if _, err := math.LegacyNewDecFromStr(args[1]); err != nil {
				return fmt.Errorf("invalid cap: %v", err)
			}

			msg := &types.MsgSetCap{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
				Cap:         args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateWeightsGradually returns the command to schedule a gradual weight
// update
func CmdUpdateWeightsGradually() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-weights-gradually [smart-pool-id] [new-weights] [start-block] [end-block]",
		Short: "Schedule a linear weight shift over a block range",
		Long: `Schedule a linear weight shift over a block range.

new-weights is a comma separated list in token bind order.

Examples:
  ammdexd tx smartpool update-weights-gradually spool-1 20,10,10 100 200 --from alice`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			startBlock, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid start block: %v", err)
			}
			endBlock, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid end block: %v", err)
			}

			msg := &types.MsgUpdateWeightsGradually{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
				NewWeights:  strings.Split(args[1], ","),
				StartBlock:  startBlock,
				EndBlock:    endBlock,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPokeWeights returns the command to poke a scheduled weight update
func CmdPokeWeights() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poke-weights [smart-pool-id]",
		Short: "Advance a scheduled gradual weight update to the current block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgPokeWeights{
				Sender:      clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCommitAddToken returns the command to commit a new token
func CmdCommitAddToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit-add-token [smart-pool-id] [denom] [balance] [weight]",
		Short: "Commit a new token for timelocked addition",
		Args:  cobra.ExactArgs(4),
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

			msg := &types.MsgCommitAddToken{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
				Denom:       args[1],
				Balance:     args[2],
				Weight:      args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApplyAddToken returns the command to apply a committed token
func CmdApplyAddToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-add-token [smart-pool-id]",
		Short: "Apply the committed token once its timelock has elapsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgApplyAddToken{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRemoveToken returns the command to remove a bound token
func CmdRemoveToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-token [smart-pool-id] [denom]",
		Short: "Remove a bound token from the pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRemoveToken{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
				Denom:       args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWhitelistLP returns the command to whitelist a liquidity provider
func CmdWhitelistLP() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist-lp [smart-pool-id] [provider]",
		Short: "Add a liquidity provider to the pool whitelist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWhitelistLP{
				Controller:  clientCtx.GetFromAddress().String(),
				SmartPoolID: args[0],
				Provider:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdJoinPool returns the command to join a smart pool
func CmdJoinPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [smart-pool-id] [pool-amount-out] [max-amounts-in]",
		Short: "Join a smart pool by depositing all bound tokens",
		Args:  cobra.ExactArgs(3),
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
				SmartPoolID:   args[0],
				PoolAmountOut: args[1],
				MaxAmountsIn:  maxAmountsIn,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExitPool returns the command to exit a smart pool
func CmdExitPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit [smart-pool-id] [pool-amount-in] [min-amounts-out]",
		Short: "Exit a smart pool by redeeming shares for all bound tokens",
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
				SmartPoolID:   args[0],
				PoolAmountIn:  args[1],
				MinAmountsOut: minAmountsOut,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// parseRights parses a comma separated capability list
func parseRights(s string) (types.Rights, error) {
	switch strings.ToLower(s) {
	case "all":
		return types.AllRights(), nil
	case "none", "":
		return types.NoRights(), nil
	}

	var rights types.Rights
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "pause":
			rights.CanPauseSwapping = true
		case "fee":
			rights.CanChangeSwapFee = true
		case "weights":
			rights.CanChangeWeights = true
		case "tokens":
			rights.CanAddRemoveTokens = true
		case "whitelist":
			rights.CanWhitelistLPs = true
		case "cap":
			rights.CanChangeCap = true
		default:
			return types.Rights{}, fmt.Errorf("invalid right: %s (use pause, fee, weights, tokens, whitelist or cap)", name)
		}
	}
	return rights, nil
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
