package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/veildark/acks-engine/internal/config"
	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/domain/enemy"
	"github.com/veildark/acks-engine/internal/domain/rules"
	"github.com/veildark/acks-engine/internal/repositories/characters"
	"github.com/veildark/acks-engine/internal/repositories/fights"
	"github.com/veildark/acks-engine/internal/services/encounter"
)

// consoleNotifier writes combat output to the process log. A real
// front end replaces this with whatever carries text to the players.
type consoleNotifier struct{}

func (consoleNotifier) Announce(text string) {
	log.Printf("[combat] %s", text)
}

func (consoleNotifier) RequestDecision(owner combat.Owner, actor combat.CombatantRef, targets []combat.CombatantRef) {
	log.Printf("[combat] %s: choose an action for %s (%d possible targets)", owner, actor, len(targets))
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load rules content
	classes, err := rules.LoadClassDir(cfg.Data.ClassDir)
	if err != nil {
		log.Printf("Failed to load classes from %s: %v", cfg.Data.ClassDir, err)
		classes = map[string]rules.Class{}
	}
	log.Printf("Loaded %d classes from %s", len(classes), cfg.Data.ClassDir)

	enemyTypes, err := enemy.LoadDir(cfg.Data.EnemyDir)
	if err != nil {
		log.Printf("Failed to load enemies from %s: %v", cfg.Data.EnemyDir, err)
		enemyTypes = map[string]enemy.Type{}
	}
	log.Printf("Loaded %d enemy types from %s", len(enemyTypes), cfg.Data.EnemyDir)

	// Default to in-memory persistence, upgrade to Redis if reachable
	characterRepo := characters.NewInMemoryRepository()
	fightRepo := fights.NewInMemoryRepository()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
		cancel()
		log.Printf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, pingErr)
		log.Println("Falling back to in-memory repositories")
		redisClient = nil
	} else {
		cancel()
		log.Printf("Connected to Redis at %s", cfg.Redis.Addr)
		characterRepo = characters.NewRedis(redisClient)
		fightRepo = fights.NewRedis(redisClient)
	}

	svc := encounter.NewService(&encounter.ServiceConfig{
		FightRepository:     fightRepo,
		CharacterRepository: characterRepo,
		EnemyTypes:          enemyTypes,
		Notifier:            consoleNotifier{},
	})

	// Report fights left over from a previous run
	if active, err := svc.ListActiveEncounters(context.Background()); err != nil {
		log.Printf("Failed to list active encounters: %v", err)
	} else if len(active) > 0 {
		log.Printf("%d encounter(s) still active from a previous run", len(active))
	}

	fmt.Println("Rules engine is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}
