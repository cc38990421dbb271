// Command seed loads a sample skincare catalog. Re-running it overwrites the
// same documents.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GhaniKale/skincare-marketplace/pkg/config"
	"github.com/GhaniKale/skincare-marketplace/pkg/logger"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	"github.com/GhaniKale/skincare-marketplace/pkg/mongo"
	"github.com/GhaniKale/skincare-marketplace/pkg/redis"
)

type seedProduct struct {
	slug, category, name, description, price, ingredients, skinType, size string
	inStock, featured                                                     bool
}

var categories = []models.Category{
	{ID: "cat-cleansers", Name: "Cleansers", Slug: "cleansers", Description: "Gentle daily cleansers"},
	{ID: "cat-toners", Name: "Toners", Slug: "toners", Description: "Balancing and hydrating toners"},
	{ID: "cat-serums", Name: "Serums", Slug: "serums", Description: "Targeted treatments"},
	{ID: "cat-moisturizers", Name: "Moisturizers", Slug: "moisturizers", Description: "Day and night creams"},
	{ID: "cat-masks", Name: "Masks", Slug: "masks", Description: "Weekly treatment masks"},
}

var products = []seedProduct{
	{"gentle-foaming-cleanser", "cat-cleansers", "Gentle Foaming Cleanser", "A low-pH foam that lifts makeup without stripping.", "18.00", "Glycerin, Coco-Glucoside, Green Tea Extract", "All", "150ml", true, false},
	{"oat-milk-cleansing-balm", "cat-cleansers", "Oat Milk Cleansing Balm", "Melts sunscreen and rinses clean.", "24.00", "Colloidal Oatmeal, Sunflower Oil", "Dry, Sensitive", "100g", true, true},
	{"rose-hydrating-toner", "cat-toners", "Rose Hydrating Toner", "Alcohol-free rosewater mist.", "16.50", "Rosa Damascena Water, Hyaluronic Acid", "All", "200ml", true, false},
	{"bha-clarifying-toner", "cat-toners", "BHA Clarifying Toner", "Two percent salicylic acid for congested pores.", "21.00", "Salicylic Acid, Niacinamide", "Oily, Combination", "150ml", true, false},
	{"vitamin-c-serum", "cat-serums", "Vitamin C Brightening Serum", "Fifteen percent L-ascorbic acid with ferulic.", "38.00", "Ascorbic Acid, Ferulic Acid, Vitamin E", "All", "30ml", true, true},
	{"rose-serum", "cat-serums", "Rose Renewal Serum", "Rosehip and bakuchiol night serum.", "42.00", "Rosehip Oil, Bakuchiol", "Dry, Mature", "30ml", true, true},
	{"niacinamide-serum", "cat-serums", "Niacinamide 10% Serum", "Refines texture and evens tone.", "19.00", "Niacinamide, Zinc PCA", "Oily, Combination", "30ml", false, false},
	{"ceramide-night-cream", "cat-moisturizers", "Ceramide Night Cream", "Barrier-repair cream for overnight recovery.", "32.00", "Ceramide NP, Cholesterol, Squalane", "Dry, Sensitive", "50ml", true, false},
	{"gel-daily-moisturizer", "cat-moisturizers", "Gel Daily Moisturizer", "Weightless hydration that sits well under sunscreen.", "26.00", "Hyaluronic Acid, Panthenol", "Oily, Combination", "50ml", true, false},
	{"kaolin-clay-mask", "cat-masks", "Kaolin Clay Mask", "Deep-cleansing mask for weekly use.", "22.00", "Kaolin, Bentonite, Tea Tree", "Oily", "75ml", true, false},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	store := mongo.NewStore(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(ctx, log); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, c := range categories {
		c.CreatedAt = now
		if err := store.UpsertCategory(ctx, c); err != nil {
			return err
		}
	}

	for i, sp := range products {
		p := models.Product{
			ID:          "prd-" + sp.slug,
			CategoryID:  sp.category,
			Name:        sp.name,
			Slug:        sp.slug,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			ImageURL:    "/images/products/" + sp.slug + ".jpg",
			Ingredients: sp.ingredients,
			SkinType:    sp.skinType,
			Size:        sp.size,
			InStock:     sp.inStock,
			Featured:    sp.featured,
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
		}
		if err := store.UpsertProduct(ctx, p); err != nil {
			return err
		}
	}

	rdb := redis.NewClient(cfg)
	defer rdb.Close()
	if err := redis.NewCatalogCache(rdb, cfg.CatalogCacheTTL).Invalidate(ctx); err != nil {
		log.Warn("catalog cache not invalidated", slog.Any("err", err))
	}

	log.Info("catalog seeded",
		slog.Int("categories", len(categories)),
		slog.Int("products", len(products)))
	return nil
}
