package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/okezie/marketlive-backend/internal/config"
	"github.com/okezie/marketlive-backend/internal/db"
	"github.com/okezie/marketlive-backend/internal/model"
	"github.com/okezie/marketlive-backend/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Listing{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Listing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("listings already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	repo := repository.NewListingRepository(gdb)
	now := time.Now().UnixMilli()
	for i, l := range demoListings() {
		l.ID = uuid.NewString()
		l.UpdatedAtMS = now + int64(i)
		if err := repo.Create(ctx, &l); err != nil {
			return fmt.Errorf("insert %q: %w", l.Name, err)
		}
	}
	log.Printf("seeded %d listings", len(demoListings()))
	return nil
}

func demoListings() []model.Listing {
	return []model.Listing{
		{
			Name: "Canon EOS 250D", Category: "Electronics", Price: 185000,
			Description: "Lightly used DSLR with 18-55mm kit lens.", Condition: "Used",
			Negotiable: true, Location: "Lagos", PaymentOption: "Cash",
			SellerContact: "08031234567", SellerID: "seller-demo-1", ImageRef: "/images/demo-camera.jpg",
		},
		{
			Name: "3-seater fabric sofa", Category: "Furniture", Price: 95000,
			Description: "Grey fabric sofa, no stains or tears.", Condition: "Used",
			Negotiable: true, Location: "Abuja", PaymentOption: "Transfer",
			SellerContact: "08097654321", SellerID: "seller-demo-2", ImageRef: "/images/demo-sofa.jpg",
		},
		{
			Name: "iPhone 13 128GB", Category: "Phones", Price: 420000,
			Description: "Unlocked, battery health 91%, with charger.", Condition: "Used",
			Negotiable: false, Location: "Port Harcourt", PaymentOption: "Cash",
			SellerContact: "07011112222", SellerID: "seller-demo-1", ImageRef: "/images/demo-iphone.jpg",
		},
		{
			Name: "Mountain bike 27.5\"", Category: "Sports", Price: 130000,
			Description: "Hardtail, recently serviced, new brake pads.", Condition: "Used",
			Negotiable: true, Location: "Ibadan", PaymentOption: "Transfer",
			SellerContact: "08120003000", SellerID: "seller-demo-3", ImageRef: "/images/demo-bike.jpg",
		},
	}
}
