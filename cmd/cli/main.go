package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/usermanager/internal/buildinfo"
	"github.com/dmitrijs2005/usermanager/internal/client/cli"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal the default handling is restored, so a second
	// one terminates the process even while a form is waiting for input.
	go func() {
		<-ctx.Done()
		stop()
	}()
	ctx = logging.WithContext(ctx, logger)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
