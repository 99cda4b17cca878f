package main

import (
	"log"
	"os"
	"time"

	"placeholder/internal/apicheck"

	"github.com/spf13/viper"
)

func main() {
	viper.SetDefault("CHECK_URL", apicheck.DefaultURL)
	viper.SetDefault("CHECK_TIMEOUT_SECONDS", 10)
	viper.AutomaticEnv()

	url := viper.GetString("CHECK_URL")
	timeout := time.Duration(viper.GetInt("CHECK_TIMEOUT_SECONDS")) * time.Second

	if err := apicheck.Run(os.Stdout, url, timeout); err != nil {
		log.Fatalf("Check failed: %v", err)
	}
}
