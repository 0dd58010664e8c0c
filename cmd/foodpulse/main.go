/*
Package main is the entry point for the foodpulse CLI.

Usage:

	foodpulse serve    run the HTTP API and the optional Telegram bot
	foodpulse initdb   create the database schema
	foodpulse chat     chat with the assistant in the terminal
	foodpulse version  print build information
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/foodpulse/foodpulse/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.Date = version, commit, date

	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
