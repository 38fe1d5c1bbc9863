package main

import (
	"fmt"
	"os"

	"github.com/vladimiradmaev/recipebox/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	// Load also reads a .env file if there is one
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	if cfg.TelegramToken == "" {
		fmt.Println("⚠️  TELEGRAM_BOT_TOKEN is not set, the bot will not start")
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - Redis: %s\n", redisAddr(cfg.Redis))
	fmt.Printf("  - Import User-Agent: %s\n", cfg.Import.UserAgent)
	fmt.Printf("  - Import Timeout: %s\n", cfg.Import.Timeout)
	fmt.Printf("  - Reimport Delay: %s\n", cfg.Import.ReimportDelay)
	fmt.Printf("  - Page Cache TTL: %s\n", cfg.Import.PageCacheTTL)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func redisAddr(cfg config.RedisConfig) string {
	if !cfg.Enabled() {
		return "<disabled>"
	}
	return fmt.Sprintf("%s db=%d", cfg.Addr, cfg.DB)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
