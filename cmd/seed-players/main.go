// cmd/seed-players - bulk roster import from a JSON file
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ShrijaySharma/Ezauction/database"
	"github.com/ShrijaySharma/Ezauction/models"
)

type JSONPlayer struct {
	Name         string   `json:"name"`
	Image        *string  `json:"image"`
	Role         string   `json:"role"`
	Country      *string  `json:"country"`
	Age          *int     `json:"age"`
	BasePrice    float64  `json:"basePrice"`
	SerialNumber *int     `json:"serialNumber"`
}

func main() {
	path := flag.String("file", "./data/players.json", "path to the roster JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read roster file:", err)
	}

	var entries []JSONPlayer
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("Failed to parse roster JSON:", err)
	}

	fmt.Printf("Found %d players\n\n", len(entries))

	players := make([]models.Player, 0, len(entries))
	nextSerial := 1
	for _, e := range entries {
		if e.Name == "" || e.Role == "" {
			log.Fatalf("Player missing name or role: %+v", e)
		}
		serial := e.SerialNumber
		if serial == nil {
			n := nextSerial
			serial = &n
		}
		if *serial >= nextSerial {
			nextSerial = *serial + 1
		}
		players = append(players, models.Player{
			Name:         e.Name,
			Image:        e.Image,
			Role:         e.Role,
			Country:      e.Country,
			Age:          e.Age,
			BasePrice:    e.BasePrice,
			Status:       models.PlayerAvailable,
			SerialNumber: serial,
		})
	}

	batchSize := 500
	for i := 0; i < len(players); i += batchSize {
		end := i + batchSize
		if end > len(players) {
			end = len(players)
		}

		batch := players[i:end]
		if err := db.Create(&batch).Error; err != nil {
			log.Printf("Error inserting batch %d-%d: %v\n", i, end, err)
		} else {
			fmt.Printf("Inserted players %d-%d\n", i+1, end)
		}
	}

	var count int64
	db.Model(&models.Player{}).Count(&count)
	fmt.Printf("\n✓ Import completed. Total players in database: %d\n", count)
}
