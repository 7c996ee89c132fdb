package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"showroom/internal/app"
	"showroom/internal/config"
	"showroom/internal/logger"

	"github.com/rs/zerolog"
)

func main() {
	// Run from the executable's directory so relative asset and log paths
	// resolve in deployed builds. "go run" binaries live in a go-build temp dir.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "showroom:", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "showroom:", err)
		os.Exit(1)
	}
	os.Exit(run(cfg, log, closer))
}

// run returns the exit code. The log closer runs before any exit so a file
// log keeps its last lines.
func run(cfg *config.Config, log zerolog.Logger, closer io.Closer) int {
	defer closer.Close()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}
	a.DebugMode = len(os.Args) > 1 && os.Args[1] == "--debug"

	if err := a.Run(); err != nil {
		log.Error().Err(err).Msg("showroom exited")
		return 1
	}
	return 0
}
