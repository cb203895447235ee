// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/launchpool/launchpool/client"
	"github.com/launchpool/launchpool/launch"
)

var tokenCommand = cli.Command{
	Name:  "token",
	Usage: "inspect and move development tokens",
	Subcommands: []cli.Command{
		{
			Name:   "register",
			Usage:  "register a token (node needs --enable-mint)",
			Flags:  []cli.Flag{tokenFlag, symbolFlag, decimalsFlag},
			Action: tokenRegisterAction,
		},
		{
			Name:   "mint",
			Usage:  "mint tokens to an address (node needs --enable-mint)",
			Flags:  []cli.Flag{tokenFlag, toFlag, amountFlag},
			Action: tokenMintAction,
		},
		{
			Name:   "transfer",
			Usage:  "transfer tokens from the caller",
			Flags:  []cli.Flag{tokenFlag, callerFlag, toFlag, amountFlag},
			Action: tokenTransferAction,
		},
		{
			Name:   "approve",
			Usage:  "set the allowance of a spender over the caller's tokens",
			Flags:  []cli.Flag{tokenFlag, callerFlag, toFlag, amountFlag},
			Action: tokenApproveAction,
		},
		{
			Name:   "balance",
			Usage:  "print the balance of the caller",
			Flags:  []cli.Flag{tokenFlag, callerFlag},
			Action: tokenBalanceAction,
		},
	},
}

// tokenAmount parses the amount flag in the units of token.
func tokenAmount(ctx *cli.Context, c *client.Client, token launch.Address) (*big.Int, uint8, error) {
	tk, err := c.Token(token)
	if err != nil {
		return nil, 0, err
	}
	s := ctx.String(amountFlag.Name)
	if s == "" {
		return nil, 0, errors.Errorf("-%s is required", amountFlag.Name)
	}
	v, err := launch.ParseUnits(s, tk.Decimals)
	if err != nil {
		return nil, 0, errors.WithMessage(err, amountFlag.Name)
	}
	return v, tk.Decimals, nil
}

func tokenRegisterAction(ctx *cli.Context) error {
	decimals := ctx.Uint(decimalsFlag.Name)
	if decimals > 77 {
		return errors.Errorf("-%s: too many decimals %d", decimalsFlag.Name, decimals)
	}
	token := mustAddress(ctx, tokenFlag)
	if err := newClient(ctx).RegisterToken(token, ctx.String(symbolFlag.Name), uint8(decimals)); err != nil {
		return err
	}
	fmt.Printf("token %v registered\n", token)
	return nil
}

func tokenMintAction(ctx *cli.Context) error {
	c := newClient(ctx)
	token, to := mustAddress(ctx, tokenFlag), mustAddress(ctx, toFlag)
	v, decimals, err := tokenAmount(ctx, c, token)
	if err != nil {
		return err
	}
	if err := c.Mint(token, to, v); err != nil {
		return err
	}
	fmt.Printf("minted %v to %v\n", launch.FormatUnits(v, decimals), to)
	return nil
}

func tokenTransferAction(ctx *cli.Context) error {
	c := newClient(ctx)
	token, caller, to := mustAddress(ctx, tokenFlag), mustAddress(ctx, callerFlag), mustAddress(ctx, toFlag)
	v, decimals, err := tokenAmount(ctx, c, token)
	if err != nil {
		return err
	}
	if err := c.Transfer(token, caller, to, v); err != nil {
		return err
	}
	fmt.Printf("transferred %v to %v\n", launch.FormatUnits(v, decimals), to)
	return nil
}

func tokenApproveAction(ctx *cli.Context) error {
	c := newClient(ctx)
	token, caller, spender := mustAddress(ctx, tokenFlag), mustAddress(ctx, callerFlag), mustAddress(ctx, toFlag)
	v, decimals, err := tokenAmount(ctx, c, token)
	if err != nil {
		return err
	}
	if err := c.Approve(token, caller, spender, v); err != nil {
		return err
	}
	fmt.Printf("approved %v for %v\n", launch.FormatUnits(v, decimals), spender)
	return nil
}

func tokenBalanceAction(ctx *cli.Context) error {
	c := newClient(ctx)
	token, owner := mustAddress(ctx, tokenFlag), mustAddress(ctx, callerFlag)
	tk, err := c.Token(token)
	if err != nil {
		return err
	}
	bal, err := c.BalanceOf(token, owner)
	if err != nil {
		return err
	}
	fmt.Printf("%v %v\n", launch.FormatUnits(bal, tk.Decimals), tk.Symbol)
	return nil
}
