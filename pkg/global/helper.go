package global

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func GetMongoURI() string {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is not set in environment variables")
		os.Exit(1)
	}
	return mongoURI
}

func GetDatabaseName() string {
	dbName := GetEnvOrDefault("MONGODB_DATABASE", "lorcana")
	return dbName
}

// GetTaxRate reads the sales tax rate applied at checkout. The shop ships
// from Ontario, hence the 13% HST default.
func GetTaxRate() float64 {
	raw := GetEnvOrDefault("TAX_RATE", "0.13")
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		log.Printf("Warning: invalid TAX_RATE %q, using 0.13", raw)
		return 0.13
	}
	return rate
}
