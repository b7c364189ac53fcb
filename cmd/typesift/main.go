// Copyright 2026 The typesift Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the typed completion server and CLI [DBG] application.

typesift serves method and constant completions for a gradually typed,
class-based language. It resolves queries against a symbol table
snapshot exported by the type checker: ancestor linearization, the
intersection/union/generic type algebra and dispatch chains are all
honored without re-running inference. It can operate as a msgpack IPC
server for integration with editor transports, or as a CLI application
for testing and debugging.

# Usage

Start the server against a snapshot:

	typesift -snap workspace.tsift

Use a custom config and enable debug mode:

	typesift -snap workspace.tsift -config ./typesift.toml -d

Run in CLI mode for interactive testing:

	typesift -snap workspace.tsift -c -limit 10

# Configuration

Runtime configuration is managed through a TOML file covering server
bounds, client capabilities, and resolver behavior:

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60

	[client]
	snippet_support = true
	markup_kind = "markdown"

	[resolver]
	fuzzy = true

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. Completion
requests name the receiver by fully qualified path and are processed
synchronously with microsecond timing information in responses.

Send a completion request:

	{"id": "req1", "op": "complete", "recv": "A::B", "p": "foo", "l": 20}

Receive ranked items:

	{"id": "req1", "s": [{"w": "foo_bar", "k": "method", "sort": "000000"}], "c": 1, "t": 145}

`constants` completes in the receiver's lexical scope, `symbols` lists
fully qualified names by prefix, and `info`/`health` report snapshot
statistics and readiness.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging
resolution. It reads `Receiver prefix` lines from stdin and displays
ranked items with kind and signature detail. New behavior should be
exercised here before relying on it in server mode.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"typesift/internal/cli"
	applog "typesift/internal/logger"
	"typesift/internal/utils"
	"typesift/pkg/completion"
	"typesift/pkg/config"
	"typesift/pkg/match"
	"typesift/pkg/server"
	"typesift/pkg/snapshot"
)

const (
	Version = "0.3.0"
	AppName = "typesift"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	snapPath := flag.String("snap", "", "Path to the symbol table snapshot to serve")
	configPath := flag.String("config", "", "Path to a TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	quiet := flag.Bool("q", false, "Only log errors")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.Server.MaxLimit, "Number of completions to return")
	minPrefix := flag.Int("prmin", defaults.Server.MinPrefix, "Minimum prefix length for queries")
	maxPrefix := flag.Int("prmax", defaults.Server.MaxPrefix, "Maximum prefix length for queries")

	flag.Parse()

	if *showVersion {
		showVersionBanner()
		os.Exit(0)
	}

	switch {
	case *debugMode:
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	case *quiet:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	appConfig, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if loadedFrom != "" {
		log.Debugf("Using config file: (%s)", loadedFrom)
	}
	appConfig.Server.MinPrefix = *minPrefix
	appConfig.Server.MaxPrefix = *maxPrefix

	if *snapPath == "" {
		log.Fatal("No snapshot specified, nothing to serve (see -snap)")
	}

	log.Debugf("Loading snapshot: (%s)", *snapPath)
	table, err := snapshot.LoadFile(*snapPath)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	resolver := completion.NewResolver(table, match.New(appConfig.Resolver.Fuzzy), completion.Options{
		SnippetSupport: appConfig.Client.SnippetSupport,
		MarkupKind:     appConfig.Client.MarkupKind,
	})

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", appConfig.Server.MinPrefix,
			"maxPrefix", appConfig.Server.MaxPrefix,
			"limit", *limit)

		inputHandler := cli.NewInputHandler(resolver, appConfig.Server.MinPrefix, appConfig.Server.MaxPrefix, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(table, resolver, appConfig)

	showStartupInfo(*snapPath, table.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func showVersionBanner() {
	logger := applog.Default("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ typesift ] Serves type-directed completions!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(snapPath string, symbols int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("snapshot: ( %s )", snapPath)
	log.Infof("symbols: %s", utils.FormatWithCommas(symbols))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
