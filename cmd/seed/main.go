// Package main seeds the cybermod database with a world file.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	seedcmd "github.com/louisbranch/pound-of-flesh/internal/cmd/seed"
	platformcmd "github.com/louisbranch/pound-of-flesh/internal/platform/cmd"
)

func main() {
	log.SetPrefix("[SEED] ")
	err := platformcmd.Execute(platformcmd.ServiceSeed, flag.CommandLine, os.Args[1:], seedcmd.ParseConfig,
		func(ctx context.Context, cfg seedcmd.Config) error {
			return seedcmd.Run(ctx, cfg, os.Stdout)
		})
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
}
