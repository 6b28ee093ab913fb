package config

import (
	"github.com/caarlos0/env/v11"
)

// API configures the backend server.
type API struct {
	Addr          string   `env:"ADDR" envDefault:":8080"`
	MongoURI      string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string   `env:"MONGO_DB" envDefault:"ecommerce"`
	RedisAddr     string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"shop-events"`
	JWTSecret     string   `env:"JWT_SECRET,required"`
}

// Notifier configures the order-confirmation consumer.
type Notifier struct {
	MongoURI      string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string   `env:"MONGO_DB" envDefault:"ecommerce"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"shop-events"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"order-notifier"`
	SMTPHost      string   `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort      string   `env:"SMTP_PORT" envDefault:"1025"`
	SMTPFrom      string   `env:"SMTP_FROM" envDefault:"noreply@example.com"`
}

// Seed configures the catalog seeder.
type Seed struct {
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"ecommerce"`
}

// Storefront configures the client-side storefront.
type Storefront struct {
	APIBaseURL string `env:"STORE_API_URL" envDefault:"https://fakestoreapi.com"`
	DataDir    string `env:"STORE_DATA_DIR"`
}

func LoadAPI() (*API, error) {
	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadNotifier() (*Notifier, error) {
	cfg := &Notifier{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadSeed() (*Seed, error) {
	cfg := &Seed{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadStorefront() (*Storefront, error) {
	cfg := &Storefront{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
