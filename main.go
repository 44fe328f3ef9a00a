package main

import (
	"flag"
	"log"

	"github.com/dhis2/approval-backend/cmd"
)

// Overridden at build time with -ldflags "-X main.apiVersion=..."
var apiVersion = "dev"

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunServer := flag.Bool("server", false, "Run server")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(cmd.CompiledConfig{Version: apiVersion}); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}
}
