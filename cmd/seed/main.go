package main

import (
	"context"
	"log"

	"github.com/avkurov/product-catalog/internal/config"
	"github.com/avkurov/product-catalog/internal/db"
	"github.com/avkurov/product-catalog/internal/models"
)

var sampleProducts = []models.Product{
	{
		Title:       "Wireless Headphones",
		Description: "Over-ear wireless headphones with active noise cancellation",
		Price:       129.99,
		ImageURL:    "https://images.example.com/products/headphones.jpg",
		IsFeatured:  true,
	},
	{
		Title:       "Mechanical Keyboard",
		Description: "Tenkeyless mechanical keyboard with hot-swappable switches",
		Price:       89.50,
		ImageURL:    "https://images.example.com/products/keyboard.jpg",
		IsFeatured:  true,
	},
	{
		Title:       "USB-C Hub",
		Description: "7-in-1 USB-C hub with HDMI, ethernet and card reader",
		Price:       34.99,
		ImageURL:    "https://images.example.com/products/usbc-hub.jpg",
	},
	{
		Title:       "Desk Lamp",
		Description: "Adjustable LED desk lamp with three color temperatures",
		Price:       24.90,
		ImageURL:    "https://images.example.com/products/desk-lamp.jpg",
	},
	{
		Title:       "Laptop Stand",
		Description: "Aluminium laptop stand with adjustable height and tilt",
		Price:       42.00,
		ImageURL:    "https://images.example.com/products/laptop-stand.jpg",
	},
}

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(context.Background(), configuration)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}

	for _, p := range sampleProducts {
		var existing models.Product
		res := database.Where("title = ?", p.Title).First(&existing)
		if res.Error == nil {
			log.Printf("skip %q: already seeded", p.Title)
			continue
		}
		if err := database.Create(&p).Error; err != nil {
			log.Fatalf("seed %q: %v", p.Title, err)
		}
		log.Printf("seeded %q (id=%d)", p.Title, p.ID)
	}

	log.Println("seeding complete")
}
