package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads key from .env, falling back to the process environment when
// no .env file exists. Missing keys come back as "".
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}
