package commands

import (
	"VNumbers/internal/cli/api"
	"VNumbers/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Dispatch разбирает имя команды, запускает её и возвращает код выхода процесса.
// Справка: пустой вызов, "help [command]", -h/--help.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "help", "-h", "--help":
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		return unknown(name)
	}
	return report(c, c.Run(ctx, cfg, args[1:]))
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(strings.ToLower(args[0]))
	if !ok {
		return unknown(args[0])
	}
	fmt.Fprintf(Out, "Usage: vnctl %s\n  %s\n", c.Usage(), c.Description())
	return ExitOK
}

func unknown(name string) int {
	fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
	fmt.Fprint(Out, FormatGlobalUsage())
	return ExitUsage
}

// report печатает результат команды. Ответы сервера не 2xx выводятся его собственным текстом ошибки.
func report(c Command, err error) int {
	var se *api.StatusError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: vnctl %s\n", c.Usage())
		return ExitUsage
	case errors.As(err, &se) && se.Code == http.StatusTooManyRequests:
		fmt.Fprintf(Out, "%s: %s\n", c.Name(), se.Text)
		return ExitCooldown
	case errors.As(err, &se):
		fmt.Fprintf(Out, "%s failed (HTTP %d): %s\n", c.Name(), se.Code, se.Text)
		return ExitFailed
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitFailed
	}
}
