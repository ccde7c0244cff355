package main

import (
	"context"
	"flag"
	"os"

	"github.com/midnight-community/gatekeeper/internal/platform/config"
	"github.com/midnight-community/gatekeeper/internal/tools/profilelookup"
)

func main() {
	cfg, err := profilelookup.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := profilelookup.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("look up profile: %v", err)
	}
}
