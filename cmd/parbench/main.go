package main

import (
	"context"
	"os"

	"github.com/kbukum/gopar/internal/cli"
	"github.com/kbukum/gopar/logger"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("command failed", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}
