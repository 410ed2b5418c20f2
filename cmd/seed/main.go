package main

import (
	"bingolive/internal/config"
	"bingolive/internal/repository"
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds the options collection. With a file argument, one option per line;
// without, the default numbered set.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	var texts []string
	if len(os.Args) > 1 {
		texts, err = readOptionsFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read options file: %v", err)
		}
	} else {
		for i := 1; i <= 100; i++ {
			texts = append(texts, fmt.Sprintf("Option %d", i))
		}
	}

	if len(texts) == 0 {
		log.Fatal("No options to seed")
	}

	optionRepo := repository.NewOptionRepo(client.Database(cfg.MongoDB))
	inserted, err := optionRepo.InsertMany(ctx, texts)
	if err != nil {
		log.Fatalf("Failed to insert options: %v", err)
	}

	total, err := optionRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count options: %v", err)
	}

	fmt.Printf("Inserted %d new options (%d total)\n", inserted, total)
}

func readOptionsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text != "" {
			texts = append(texts, text)
		}
	}
	return texts, scanner.Err()
}
