// Package main provides the cybermod command line for installing,
// inspecting and maintaining cybermods on a local world.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	cybermodcmd "github.com/louisbranch/pound-of-flesh/internal/cmd/cybermod"
	platformcmd "github.com/louisbranch/pound-of-flesh/internal/platform/cmd"
)

func main() {
	log.SetPrefix("[CYBERMOD] ")
	err := platformcmd.Execute(platformcmd.ServiceCybermod, flag.CommandLine, os.Args[1:], cybermodcmd.ParseConfig,
		func(ctx context.Context, cfg cybermodcmd.Config) error {
			return cybermodcmd.Run(ctx, cfg, os.Stdin, os.Stdout)
		})
	if err != nil {
		log.Fatalf("%v", err)
	}
}
