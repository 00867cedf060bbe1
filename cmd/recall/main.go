package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-recall-keeper/internal/config"
	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/internal/service"
	"github.com/MKhiriev/go-recall-keeper/internal/store"
	"github.com/MKhiriev/go-recall-keeper/models"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger(cfg.App.Role, cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	keyChain := crypto.NewKeyChainService()
	storages, err := store.NewStorages(ctx, cfg.Storage, keyChain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, keyChain, cfg, log)

	sh := &shell{
		auth: services.AuthService,
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		sh.password = terminalPassword
	}
	if err = sh.run(ctx); err != nil {
		log.Err(err).Msg("recall run error")
	}
}
