package main

import (
	"os"

	"github.com/noah-isme/sma-schedule-editor/internal/cmd"
)

// @title Schedule Editor API
// @version 1.0.0
// @description Weekly lesson schedule editor with conflict checks, undo history and plan reconciliation
// @BasePath /
// @schemes http

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
