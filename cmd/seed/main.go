package main

import (
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/repository/jsonfile"

	"github.com/sirupsen/logrus"
)

var products = []domain.Product{
	{
		Name:        "ASUS ROG Strix B550-F Gaming",
		Description: "AMD B550 ATX gaming motherboard with PCIe 4.0, dual M.2 slots, and Aura Sync RGB lighting.",
		Price:       12999.99,
		Stock:       25,
		ImageURL:    "/images/products/motherboard-1.jpg",
	},
	{
		Name:        "Gigabyte B450 AORUS Elite",
		Description: "AMD B450 ATX motherboard with RGB Fusion 2.0, dual BIOS, and Smart Fan 5.",
		Price:       6999.99,
		Stock:       30,
		ImageURL:    "/images/products/motherboard-3.jpg",
	},
	{
		Name:        "AMD Ryzen 9 5900X",
		Description: "12-core, 24-thread processor with 4.8GHz boost clock for high-end gaming and streaming.",
		Price:       24999.99,
		Stock:       18,
		ImageURL:    "/images/products/cpu-1.jpg",
	},
	{
		Name:        "AMD Ryzen 5 5600X",
		Description: "6-core, 12-thread processor with 4.6GHz boost. Best value CPU for mid-range builds.",
		Price:       12999.99,
		Stock:       35,
		ImageURL:    "/images/products/cpu-3.jpg",
	},
	{
		Name:        "Corsair Vengeance RGB Pro 32GB (2x16GB) DDR4-3600",
		Description: "32GB dual-channel DDR4 RAM with 3600MHz speed and RGB lighting.",
		Price:       8999.99,
		Stock:       30,
		ImageURL:    "/images/products/ram-1.jpg",
	},
	{
		Name:        "Kingston Fury Beast 16GB (2x8GB) DDR4-3200",
		Description: "16GB dual-channel DDR4 RAM with 3200MHz. Reliable memory for entry to mid-range builds.",
		Price:       3999.99,
		Stock:       45,
		ImageURL:    "/images/products/ram-3.jpg",
	},
	{
		Name:        "Samsung 980 PRO 1TB NVMe SSD",
		Description: "PCIe 4.0 NVMe SSD with 7000MB/s read speed for instant game loading.",
		Price:       8999.99,
		Stock:       32,
		ImageURL:    "/images/products/storage-1.jpg",
	},
	{
		Name:        "Corsair RM850x 850W 80+ Gold",
		Description: "850W fully modular PSU with 80+ Gold efficiency and quiet operation.",
		Price:       8999.99,
		Stock:       28,
		ImageURL:    "/images/products/psu-1.jpg",
	},
	{
		Name:        "NVIDIA GeForce RTX 4080 16GB",
		Description: "Flagship gaming GPU with DLSS 3, ray tracing, and 16GB VRAM for 4K gaming.",
		Price:       89999.99,
		Stock:       8,
		ImageURL:    "/images/products/gpu-1.jpg",
	},
	{
		Name:        "NVIDIA GeForce RTX 4070 12GB",
		Description: "Mid-range gaming GPU with DLSS 3 and ray tracing. Excellent price-to-performance at 1440p.",
		Price:       49999.99,
		Stock:       20,
		ImageURL:    "/images/products/gpu-3.jpg",
	},
	{
		Name:        "Noctua NH-D15 Chromax Black",
		Description: "Premium dual-tower air cooler with 140mm fans and whisper-quiet operation.",
		Price:       5999.99,
		Stock:       22,
		ImageURL:    "/images/products/cooling-1.jpg",
	},
	{
		Name:        "Corsair 4000D Airflow",
		Description: "Mid-tower ATX case with optimized airflow design and excellent cable management.",
		Price:       5999.99,
		Stock:       35,
		ImageURL:    "/images/products/case-2.jpg",
	},
	{
		Name:        "Gaming PC - Mid-Range",
		Description: "Complete system unit: Intel i7-12700K, RTX 4070 12GB, 32GB DDR4-3600, 1TB NVMe SSD, 750W PSU.",
		Price:       55000.00,
		Stock:       10,
		ImageURL:    "/images/products/system-2.jpg",
	},
	{
		Name:        "Gaming PC - High-End",
		Description: "Complete system unit: Ryzen 9 5900X, RTX 4080 16GB, 32GB DDR5-6000, 2TB NVMe SSD, 850W PSU.",
		Price:       134000.00,
		Stock:       5,
		ImageURL:    "/images/products/system-3.jpg",
	},
}

func main() {
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	store, err := jsonfile.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("store: init: %v", err)
	}

	repo := jsonfile.NewProductRepository(store, logger)
	existing, err := repo.FindAll()
	if err != nil {
		log.Fatalf("seed: list products: %v", err)
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("catalog already seeded, nothing to do")
		return
	}

	for i := range products {
		if err := repo.Save(&products[i]); err != nil {
			log.Fatalf("seed: save %q: %v", products[i].Name, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"count":   len(products),
		"dataDir": cfg.DataDir,
	}).Info("catalog seeded")
}
