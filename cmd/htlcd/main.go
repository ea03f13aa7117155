package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/htlc"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[htlcd] %+v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()

	app.Version = htlc.Version()
	app.Name = "htlcd"
	app.Usage = "hash time locked swap node"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "home",
			Value: filepath.Join(os.ExpandEnv("$HOME"), ".htlc"),
			Usage: "directory to store files under",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "one of debug, info, error, none",
		},
	}
	app.Commands = []cli.Command{
		initCommand, startCommand, validateCommand,
		hashCommand, deriveCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newLogger(ctx *cli.Context) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "htlc")
	level, err := log.AllowLevel(ctx.GlobalString("log-level"))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, level), nil
}
