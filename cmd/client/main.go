// vnctl - консольный клиент администрирования сервера VNumbers.
// Адрес сервера берётся из BASE_URL / --base-url, схема из ENABLE_HTTPS / --https.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"VNumbers/internal/cli/commands"
	"VNumbers/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Printf("vnctl %s (built %s)\nserver: %s\n", version, buildDate, cfg.ServerURL)
		return
	}

	// Ctrl+C прерывает запрос к серверу, а не убивает процесс посреди вывода
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	os.Exit(code)
}
