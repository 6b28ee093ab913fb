package main

import (
	"context"
	"log"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/config"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
)

var products = []models.Product{
	{
		Name:        "Laptop ASUS ROG",
		Description: "Laptop gaming ASUS ROG dengan processor Intel Core i7, RAM 16GB, SSD 512GB, dan GPU NVIDIA RTX 3060. Cocok untuk gaming dan produktivitas tinggi.",
		Price:       15000000,
		Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500",
		Category:    "electronics",
		Stock:       15,
		Rating:      4.5,
		NumReviews:  23,
	},
	{
		Name:        "Smartphone Samsung Galaxy",
		Description: "Smartphone Samsung Galaxy dengan layar AMOLED 6.7 inch, kamera 108MP, RAM 8GB, dan baterai 5000mAh. Desain premium dengan performa tinggi.",
		Price:       8000000,
		Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500",
		Category:    "electronics",
		Stock:       30,
		Rating:      4.7,
		NumReviews:  45,
	},
	{
		Name:        "T-Shirt Premium Cotton",
		Description: "T-Shirt dengan bahan cotton premium 100%, nyaman dipakai seharian. Tersedia dalam berbagai ukuran dan warna. Desain simple dan elegan.",
		Price:       150000,
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
		Category:    "clothing",
		Stock:       100,
		Rating:      4.3,
		NumReviews:  67,
	},
	{
		Name:        "Jeans Slim Fit",
		Description: "Jeans dengan model slim fit, bahan denim berkualitas tinggi. Cocok untuk casual dan semi-formal. Tersedia berbagai ukuran.",
		Price:       450000,
		Image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500",
		Category:    "clothing",
		Stock:       50,
		Rating:      4.4,
		NumReviews:  34,
	},
	{
		Name:        "Buku \"Clean Code\"",
		Description: "Buku panduan untuk menulis kode yang bersih dan mudah dipahami. Ditulis oleh Robert C. Martin, cocok untuk developer semua level.",
		Price:       200000,
		Image:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500",
		Category:    "books",
		Stock:       25,
		Rating:      4.8,
		NumReviews:  89,
	},
	{
		Name:        "Headphone Wireless Sony",
		Description: "Headphone wireless dengan noise cancellation aktif, baterai tahan hingga 30 jam, dan kualitas suara Hi-Res Audio. Nyaman untuk penggunaan lama.",
		Price:       3500000,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
		Category:    "electronics",
		Stock:       20,
		Rating:      4.6,
		NumReviews:  56,
	},
	{
		Name:        "Sepatu Running Nike",
		Description: "Sepatu running dengan teknologi Air Cushion untuk kenyamanan maksimal. Cocok untuk jogging dan olahraga sehari-hari.",
		Price:       1800000,
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500",
		Category:    "clothing",
		Stock:       40,
		Rating:      4.5,
		NumReviews:  78,
	},
	{
		Name:        "Kopi Arabika Premium",
		Description: "Kopi arabika dengan biji pilihan, di-roast dengan sempurna. Rasa yang kaya dan aroma yang menggugah selera. Kemasan 250gr.",
		Price:       75000,
		Image:       "https://images.unsplash.com/photo-1517487881594-2787fef5ebf7?w=500",
		Category:    "food",
		Stock:       200,
		Rating:      4.7,
		NumReviews:  112,
	},
}

func main() {
	cfg, err := config.LoadSeed()
	if err != nil {
		log.Fatalf("[Seed] Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("[Seed] Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(context.Background())
	log.Println("[Seed] Connected to MongoDB")

	repo := repository.NewMongoProductRepository(db)
	for _, p := range products {
		product := p
		if err := repo.Upsert(ctx, &product); err != nil {
			log.Fatalf("[Seed] Failed to seed %q: %v", product.Name, err)
		}
	}
	log.Printf("[Seed] Successfully seeded %d products", len(products))
}
