// Seeder uploads a product catalog dump to a running prodsearch server
// and triggers an index rebuild.
//
// Usage:
//
//	seeder -addr http://localhost:8080 -file catalog.json [-key API_KEY]
//
// The file holds a JSON array of products. Without -file a small demo
// catalog is uploaded instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/pkg/client"
)

var demoCatalog = []client.Product{
	{
		Title:       "Samsung Galaxy S24 Ultra 256 GB Black",
		Description: "Flagship smartphone with 200MP camera and S Pen",
		Rating:      4.6, Stock: 20, Price: 129999, MRP: 139999, Currency: "INR",
		Metadata: map[string]string{"units_sold": "5400", "color": "black", "storage": "256"},
	},
	{
		Title:       "Apple iPhone 15 128 GB Blue",
		Description: "Smartphone with A16 Bionic chip and USB-C",
		Rating:      4.7, Stock: 35, Price: 79999, MRP: 79999, Currency: "INR",
		Metadata: map[string]string{"units_sold": "12000", "color": "blue", "storage": "128"},
	},
	{
		Title:       "Sony Bravia 55 inch 4K television",
		Description: "Smart TV with Google TV and Dolby Vision",
		Rating:      4.4, Stock: 12, Price: 54999, MRP: 64999, Currency: "INR",
		Metadata: map[string]string{"units_sold": "800"},
	},
	{
		Title:       "Dell XPS 13 notebook 1 TB Silver",
		Description: "Thin and light laptop with 13.4 inch display",
		Rating:      4.3, Stock: 8, Price: 114999, MRP: 124999, Currency: "INR",
		Metadata: map[string]string{"units_sold": "450", "color": "silver", "storage": "1024"},
	},
	{
		Title:       "boAt Airdopes 141 headphones White",
		Description: "True wireless earbuds with 42 hours playback",
		Rating:      4.1, Stock: 150, Price: 1299, MRP: 4490, Currency: "INR",
		Metadata: map[string]string{"units_sold": "98000", "color": "white"},
	},
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "prodsearch server address")
	file := flag.String("file", "", "JSON catalog dump (array of products)")
	key := flag.String("key", "", "API key for Bearer auth")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	products := demoCatalog
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			logger.Fatal("Failed to read catalog file", zap.Error(err))
		}
		products = nil
		if err := json.Unmarshal(data, &products); err != nil {
			logger.Fatal("Failed to parse catalog file", zap.Error(err))
		}
	}

	var opts []client.Option
	if *key != "" {
		opts = append(opts, client.WithAPIKey(*key))
	}
	c := client.New(*addr, opts...)

	ctx := context.Background()
	uploaded := 0
	for _, p := range products {
		id, err := c.AddProduct(ctx, p)
		if err != nil {
			logger.Error("Failed to upload product",
				zap.String("title", p.Title), zap.Error(err))
			continue
		}
		logger.Debug("Product uploaded", zap.Int64("product_id", id), zap.String("title", p.Title))
		uploaded++
	}

	if err := c.RefreshIndex(ctx); err != nil {
		logger.Fatal("Failed to refresh search index", zap.Error(err))
	}

	logger.Info("Catalog seeded",
		zap.Int("uploaded", uploaded),
		zap.Int("total", len(products)),
	)
}
