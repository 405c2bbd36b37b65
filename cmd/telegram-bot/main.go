package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Abdualzizsm/telegram-bot/internal/di"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

func main() {
	// Optional .env file; real environment wins either way.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		log.Fatalf("failed to start: %s", err)
	}
}
