package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/logger"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
