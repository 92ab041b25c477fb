package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/your-org/salesdesk/internal/config"
	"github.com/your-org/salesdesk/internal/pkg/apiclient"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config failed:", err)
	}

	client := apiclient.New(cfg, logrus.New())
	ctx := context.Background()

	page, err := client.ListProducts(ctx, apiclient.ProductFilters{}, 1, cfg.Form.CatalogPageSize)
	if err != nil {
		log.Fatal("Product listing failed:", err)
	}
	log.Printf("Products: %d total, %d on page 1", page.Count, len(page.Results))

	categories, err := client.Categories(ctx)
	if err != nil {
		log.Fatal("Categories failed:", err)
	}
	brands, err := client.Brands(ctx)
	if err != nil {
		log.Fatal("Brands failed:", err)
	}
	log.Printf("Filter options: %d categories, %d brands", len(categories), len(brands))

	if len(page.Results) > 0 {
		price, err := client.ProductPrice(ctx, page.Results[0].ID)
		if err != nil {
			log.Fatal("Price lookup failed:", err)
		}
		log.Printf("Price of product %d: %s", page.Results[0].ID, price.StringFixed(2))
	}

	log.Println("All endpoints reachable")
}
