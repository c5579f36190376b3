// Package main provides a tool to seed the dataset document with the
// built-in defaults.
//
// Usage:
//
//	DATA_PATH=~/defense-index go run ./cmd/seed
//	DATA_PATH=~/defense-index go run ./cmd/seed --backend sqlite
//	DATA_PATH=~/defense-index go run ./cmd/seed --reset  # Overwrite existing data
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/store"
	"github.com/globaldefense/index-server/internal/store/sqlite"
)

var (
	backendName = flag.String("backend", "badger", "Persistence backend (badger or sqlite)")
	reset       = flag.Bool("reset", false, "Overwrite the stored dataset with the defaults")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/defense-index")
	}

	fmt.Printf("Opening %s backend at: %s\n", *backendName, dataPath)

	var (
		backend store.Backend
		err     error
	)
	switch *backendName {
	case "badger":
		backend, err = store.New(filepath.Join(dataPath, "db"), nil)
	case "sqlite":
		backend, err = sqlite.Open(filepath.Join(dataPath, "dataset.db"), nil)
	default:
		log.Fatalf("Unknown backend %q", *backendName)
	}
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	seed := domain.DefaultDataset()

	if *reset {
		patch := domain.Patch{
			Countries:       &seed.Countries,
			StatDefinitions: &seed.StatDefinitions,
			Categories:      &seed.Categories,
			Aircrafts:       &seed.Aircrafts,
			AircraftStats:   &seed.AircraftStats,
			AircraftCats:    &seed.AircraftCats,
		}
		ds, err := backend.Save(ctx, patch)
		if err != nil {
			log.Fatalf("Failed to reset dataset: %v", err)
		}
		fmt.Printf("Reset dataset: %d countries, %d aircraft\n", len(ds.Countries), len(ds.Aircrafts))
		return
	}

	ds, seeded, err := backend.EnsureSeeded(ctx, seed)
	if err != nil {
		log.Fatalf("Failed to seed dataset: %v", err)
	}
	if !seeded {
		fmt.Println("Dataset already present, nothing written (use --reset to overwrite)")
	}

	fmt.Printf("Dataset ready: %d countries, %d aircraft, %d nation stats, %d aircraft stats\n",
		len(ds.Countries), len(ds.Aircrafts), len(ds.StatDefinitions), len(ds.AircraftStats))
}
