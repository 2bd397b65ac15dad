// Development helper: wipes all tasks and flushes the list cache so a
// local environment starts from a clean slate.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"todo-api/domain/models"
	"todo-api/infrastructure/postgres"
	"todo-api/infrastructure/redis"
	"todo-api/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	result := db.WithContext(ctx).Where("1 = 1").Delete(&models.Task{})
	if result.Error != nil {
		log.Fatalf("clear tasks: %v", result.Error)
	}
	fmt.Printf("Deleted %d tasks\n", result.RowsAffected)

	if cfg.Redis.URL == "" {
		fmt.Println("Redis not configured, skipping cache flush")
		return
	}

	cache, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer cache.Close()

	deleted, err := cache.ScanAndDelete(ctx, "tasks:list:*")
	if err != nil {
		log.Fatalf("flush list cache: %v", err)
	}
	fmt.Printf("Flushed %d cached list pages\n", deleted)
}
