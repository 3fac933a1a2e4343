// Package main - Entry point for the carport-quote HTTP server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"carport-quote/api"
	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/config"
	"carport-quote/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	booksDir := flag.String("books", "", "directory of price book files")
	revision := flag.String("revision", "", "default price book revision")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	cfg := config.Get()

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	dir := *booksDir
	if dir == "" {
		dir = cfg.PriceBooks.Directory
	}
	defaultRev := *revision
	if defaultRev == "" {
		defaultRev = cfg.PriceBooks.DefaultRevision
	}

	books := loadBooks(dir)
	if len(books) == 0 {
		sample := pricebook.Sample()
		books = map[string]*pricebook.PriceBook{sample.Revision(): sample}
		logging.Warn("No price books found, serving the built-in sample",
			zap.String("revision", sample.Revision()))
	}

	defaultTerms := types.Terms{
		DiscountRate:    cfg.Terms.DiscountRate,
		DownPaymentRate: cfg.Terms.DownPaymentRate,
	}
	apiServer := api.NewServer(version, books, defaultRev, defaultTerms)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = cfg.Server.Address
	}

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	logging.Info("Starting carport-quote server",
		zap.String("addr", listenAddr),
		zap.Int("pricebooks", len(books)),
		zap.String("version", version))

	if err := server.ListenAndServe(); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}

// loadBooks loads every price book in dir, or none if dir is unset or missing
func loadBooks(dir string) map[string]*pricebook.PriceBook {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	books, err := pricebook.LoadDir(dir)
	if err != nil {
		logging.Fatal("failed to load price books", zap.String("dir", dir), zap.Error(err))
	}
	return books
}
