package main

import (
	_ "embed"
	"flag"
	"strings"
	"time"

	"gamestore/pkg/accounts"
	"gamestore/pkg/catalog"
	"gamestore/pkg/config"
	"gamestore/pkg/linkcheck"
	"gamestore/pkg/log"
	"gamestore/pkg/server"
	"gamestore/pkg/session"
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	settingsPath := flag.String("settings", "settings.json", "Settings file path")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		log.SetDebugMode()
	}

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("settings", *settingsPath).Msg("Failed to load settings")
	}

	catalogStore, err := catalog.NewStore(cfg.CatalogDB)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.CatalogDB).Msg("Failed to open catalog store")
	}
	defer func() { _ = catalogStore.Close() }()

	accountStore, err := accounts.NewStore(cfg.AccountsDB)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.AccountsDB).Msg("Failed to open accounts store")
	}
	defer func() { _ = accountStore.Close() }()

	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("seed_file", cfg.SeedFile).Msg("Failed to load seed file")
		}
		if err := catalogStore.SeedIfEmpty(seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	if cfg.AdminPassword != "" {
		err := accountStore.Bootstrap(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminHashAlgo, cfg.AdminRehash)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
		}
	}

	sessions := session.NewManager(time.Duration(cfg.SessionTTLMinutes) * time.Minute)

	var checker *linkcheck.Checker
	if cfg.VerifyLinks {
		checker = linkcheck.New()
	}

	srv := server.New(cfg, strings.TrimSpace(Version), catalogStore, accountStore, sessions, checker)
	if err := srv.Start(cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
