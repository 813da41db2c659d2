// Package main is the entry point for the scop model viewer.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/config"
	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// A bare positional argument names the model.
	if args := config.Args(); len(args) > 0 {
		cfg.Model.Path = args[0]
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== scop ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Model.Path == "" {
		path, err := pickModel()
		if err == dialog.ErrCancelled {
			logger.Info("no model selected")
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "No model given (use -model) and the file dialog failed: %v\n", err)
			os.Exit(1)
		}
		cfg.Model.Path = path
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// pickModel asks for an OBJ file with a native dialog.
func pickModel() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open model").
		Load()
}
