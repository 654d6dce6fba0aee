package main

import (
	"fmt"
	"net"
	"os"

	"github.com/powerguard/autonomy-planner/internal/config"
	"github.com/powerguard/autonomy-planner/internal/store"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore connects to the configured database and returns the store wrapping it.
func openStore(cfg *config.Config) (store.Store, error) {
	zap.S().Info("Initializing data store")
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing data store: %w", err)
	}
	return store.NewStore(db), nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
