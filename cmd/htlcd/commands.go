package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/htlc"
	htlcd "github.com/iov-one/htlc/cmd/htlcd/app"
	"github.com/iov-one/htlc/commands/server"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/aswap"
	"github.com/iov-one/htlc/x/hashlock"
	"github.com/urfave/cli"
)

var initCommand = cli.Command{
	Name:      "init",
	Usage:     "write app_state into the genesis file",
	ArgsUsage: "[program id] [owner]",
	Description: "Adds a program id, one funded account and the default " +
		"configuration to the genesis file under --home. Missing keys " +
		"are generated.",
	Action: func(ctx *cli.Context) error {
		logger, err := newLogger(ctx)
		if err != nil {
			return err
		}
		return server.InitCmd(htlcd.GenInitOptions, logger, ctx.GlobalString("home"), ctx.Args())
	},
}

var startCommand = cli.Command{
	Name:  "start",
	Usage: "run the abci server",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "bind",
			Value: "tcp://localhost:26658",
			Usage: "address server listens on",
		},
		cli.StringFlag{
			Name:  "genesis",
			Usage: "genesis file to read the program id from (default $HOME/config/genesis.json)",
		},
		cli.StringFlag{
			Name:  "metrics",
			Value: "localhost:9102",
			Usage: "address prometheus metrics are served on, empty to disable",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "call stack returned on error",
		},
	},
	Action: func(ctx *cli.Context) error {
		logger, err := newLogger(ctx)
		if err != nil {
			return err
		}
		return server.StartCmd(htlcd.GenerateApp, &server.Options{
			Home:    ctx.GlobalString("home"),
			Bind:    ctx.String("bind"),
			Genesis: ctx.String("genesis"),
			Metrics: ctx.String("metrics"),
			Debug:   ctx.Bool("debug"),
			Logger:  logger,
		})
	},
}

var validateCommand = cli.Command{
	Name:      "validate",
	Usage:     "check genesis files can initialize the app",
	ArgsUsage: "genesis.json...",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() == 0 {
			return cli.ShowCommandHelp(ctx, "validate")
		}
		return server.ValidateGenesis(htlcd.Initializers(), ctx.Args())
	},
}

var hashCommand = cli.Command{
	Name:      "hash",
	Usage:     "print the hash commitment of a secret",
	ArgsUsage: "secret",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "hex",
			Usage: "the secret is hex encoded",
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.ShowCommandHelp(ctx, "hash")
		}
		secret := []byte(ctx.Args().First())
		if ctx.Bool("hex") {
			raw, err := hex.DecodeString(ctx.Args().First())
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "secret: %s", err)
			}
			secret = raw
		}
		fmt.Println(hashlock.Hash(secret))
		return nil
	},
}

var deriveCommand = cli.Command{
	Name:      "derive",
	Usage:     "print the escrow and vault addresses of a swap",
	ArgsUsage: "program_id initiator hash_commitment",
	Action: func(ctx *cli.Context) error {
		args := ctx.Args()
		if len(args) != 3 {
			return cli.ShowCommandHelp(ctx, "derive")
		}
		programID, err := htlc.ParsePubkey(args[0])
		if err != nil {
			return errors.Wrap(err, "program id")
		}
		initiator, err := htlc.ParsePubkey(args[1])
		if err != nil {
			return errors.Wrap(err, "initiator")
		}
		commitment, err := hashlock.ParseDigest(args[2])
		if err != nil {
			return errors.Wrap(err, "hash commitment")
		}
		addrs, err := aswap.DeriveAddresses(programID, initiator, commitment)
		if err != nil {
			return err
		}
		fmt.Printf("escrow %s (bump %d)\n", addrs.Escrow, addrs.EscrowBump)
		fmt.Printf("vault  %s (bump %d)\n", addrs.Vault, addrs.VaultBump)
		return nil
	},
}
