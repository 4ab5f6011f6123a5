package main

import (
	"context"
	"encoding/json"
	"flag"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/aimarket/haggle-engine/internal/config"
	"github.com/aimarket/haggle-engine/internal/logger"
	"github.com/aimarket/haggle-engine/internal/storage"
	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/money"
	"github.com/aimarket/haggle-engine/pkg/user"
)

// seedLevels is the starter catalog. Prices are in cents.
var seedLevels = []level.Level{
	{
		ID:                 "vintage-camera",
		Name:               "Vintage Camera",
		ProductDescription: "A 1960s rangefinder camera in working condition, with the original leather case.",
		VendorPersonality:  "A stubborn collector who knows exactly what his items are worth and rarely budges.",
		InitialPrice:       money.FromCents(50000),
		TargetPrice:        money.FromCents(40000),
		RequiredPoints:     0,
	},
	{
		ID:                 "guitar-strings",
		Name:               "Guitar Strings",
		ProductDescription: "A fresh set of phosphor bronze acoustic guitar strings, still sealed.",
		VendorPersonality:  "A patient and kind shop owner who enjoys chatting with musicians.",
		InitialPrice:       money.FromCents(4500),
		TargetPrice:        money.FromCents(2500),
		RequiredPoints:     0,
	},
	{
		ID:                 "vintage-guitar",
		Name:               "Vintage Guitar",
		ProductDescription: "A 1970s electric guitar with original pickups and a worn sunburst finish.",
		VendorPersonality:  "A stubborn and confident dealer who insists the guitar will sell itself.",
		InitialPrice:       money.FromCents(100000),
		TargetPrice:        money.FromCents(80000),
		RequiredPoints:     30,
	},
	{
		ID:                 "xbox-one",
		Name:               "Xbox One",
		ProductDescription: "A used Xbox One console with two controllers and a handful of games.",
		VendorPersonality:  "An eager seller who needs the cash and wants this gone today.",
		InitialPrice:       money.FromCents(25000),
		TargetPrice:        money.FromCents(18000),
		RequiredPoints:     60,
	},
}

func main() {
	demoUser := flag.Bool("demo-user", false, "also create a demo user in the user store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}
	log := logger.Setup(cfg)

	levelsDir := filepath.Join(cfg.DataDir, "levels")
	if err := os.MkdirAll(levelsDir, 0o755); err != nil {
		log.Error("Failed to create levels directory", "path", levelsDir, "error", err)
		os.Exit(1)
	}

	for i := range seedLevels {
		l := &seedLevels[i]
		if err := l.Validate(); err != nil {
			log.Error("Invalid seed level", "id", l.ID, "error", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			log.Error("Failed to marshal level", "id", l.ID, "error", err)
			os.Exit(1)
		}

		path := filepath.Join(levelsDir, l.ID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Error("Failed to write level file", "path", path, "error", err)
			os.Exit(1)
		}
		log.Info("Seeded level", "id", l.ID, "path", path)
	}

	if !*demoUser {
		log.Info("Seeding complete", "levels", len(seedLevels))
		return
	}

	users, err := storage.NewMySQLUserStore(cfg.MySQLDSN(), log)
	if err != nil {
		log.Error("Failed to connect to user store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = users.Close() }()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash demo password", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	demo := &user.User{
		ID:           ulid.Make().String(),
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.CreateUser(ctx, demo); err != nil {
		if err == storage.ErrEmailTaken {
			log.Info("Demo user already exists")
		} else {
			log.Error("Failed to create demo user", "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("Seeded demo user", "email", demo.Email)
	}

	log.Info("Seeding complete", "levels", len(seedLevels))
}
