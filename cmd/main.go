package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsachdeva7/dev-clipboard/config"
	"github.com/jsachdeva7/dev-clipboard/drag"
	"github.com/jsachdeva7/dev-clipboard/internal/util"
	"github.com/jsachdeva7/dev-clipboard/panel"
	"github.com/jsachdeva7/dev-clipboard/tree"
	"github.com/jsachdeva7/dev-clipboard/watch"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		mode       string
		copyFlag   bool
		watchFlag  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&mode, "mode", "", "Output mode: tree or blocks")
	flag.BoolVar(&copyFlag, "copy", false, "Copy output to the system clipboard instead of stdout")
	flag.BoolVar(&watchFlag, "watch", false, "Stay resident and reprint when watched files change")
	flag.BoolVar(&watchFlag, "w", false, "--watch (shorthand)")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Initialize logger
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	util.InitializeLogger(logLvls[verbose-1])
	logger := util.GetLogger("main")

	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.NewConfigFromFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config")
		}
		cfg = loaded
	}
	if mode != "" {
		cfg.SerializeMode = mode
	}

	paths := flag.Args()
	if len(paths) == 0 {
		logger.Fatal().Msg("No input paths; pass files or directories as arguments")
	}

	bridge, err := watch.NewBridge(cfg.Debounce())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start watch bridge")
	}
	defer bridge.Close() // nolint:errcheck

	store := tree.NewStore()
	pnl := panel.New(cfg, store, bridge)
	pnl.DropExternal(paths, drag.None())
	logger.Info().Int("paths", len(paths)).Int("watched", len(bridge.Watched())).Msg("Tree built")

	emit := func() {
		if copyFlag {
			if _, err := pnl.SerializeToClipboard(); err != nil {
				logger.Error().Err(err).Msg("Clipboard copy failed; printing to stdout")
				fmt.Print(pnl.SerializeText())
			}
			return
		}
		fmt.Print(pnl.SerializeText())
	}
	emit()

	if !watchFlag {
		return
	}

	// Stay resident: reprint whenever watched file content lands in the tree.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	last := store.Version()
	for {
		select {
		case <-ticker.C:
			if v := store.Version(); v != last {
				last = v
				emit()
			}
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("Shutting down")
			return
		}
	}
}
