package commands

import (
	"VNumbers/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage - аргументы команды неверны, нужно показать её usage.
var ErrUsage = errors.New("usage")

// Коды выхода vnctl.
const (
	ExitOK       = 0
	ExitFailed   = 1
	ExitUsage    = 2
	ExitCooldown = 3 // сервер ответил 429: категория на таймере удаления
)

// Command - подкоманда vnctl, обращающаяся к HTTP API сервера VNumbers.
type Command interface {
	// Name - имя команды, например "restore".
	Name() string
	Description() string
	// Usage - строка вызова, например "delete <id>".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// Group - раздел справки, в котором показывается команда.
type Group string

const (
	GroupNumbers   Group = "Numbers"
	GroupMessages  Group = "Messages"
	GroupLifecycle Group = "Delete / restore"
	GroupOther     Group = "Other"
)

// порядок разделов в справке
var groupOrder = []Group{GroupNumbers, GroupMessages, GroupLifecycle, GroupOther}

type entry struct {
	cmd   Command
	group Group
}

var registry = map[string]entry{}

// Out - writer для вывода CLI, в тестах подменяется буфером.
var Out io.Writer = os.Stdout

// RegisterCmd регистрирует команду в разделе group. Вызывается из init() файла команды.
func RegisterCmd(group Group, cmd Command) {
	registry[cmd.Name()] = entry{cmd: cmd, group: group}
}

func Get(name string) (Command, bool) {
	e, ok := registry[name]
	return e.cmd, ok
}

// List возвращает команды раздела, отсортированные по имени.
func List(group Group) []Command {
	var list []Command
	for _, e := range registry {
		if e.group == group {
			list = append(list, e.cmd)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage собирает общую справку: разделы команд, переменные окружения и коды выхода.
func FormatGlobalUsage() string {
	lines := []string{
		"vnctl - VNumbers admin CLI: manages physical and virtual numbers,",
		"their inbound messages, and the delete / restore cycle with category cooldowns.",
		"",
		"Usage:",
		"  vnctl [--base-url <host:port>] [--https] <command> [args]",
		"  vnctl help <command>",
	}
	for _, g := range groupOrder {
		cmds := List(g)
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, "", string(g)+":")
		for _, c := range cmds {
			lines = append(lines, fmt.Sprintf("  %-40s %s", c.Usage(), c.Description()))
		}
	}
	lines = append(lines,
		"",
		"Environment:",
		"  BASE_URL       server address, host:port (default localhost:8081)",
		"  ENABLE_HTTPS   talk to the server over https",
		"",
		"Exit codes:",
		fmt.Sprintf("  %d ok, %d request failed, %d bad arguments, %d category in deletion cooldown",
			ExitOK, ExitFailed, ExitUsage, ExitCooldown),
	)
	return strings.Join(lines, "\n") + "\n"
}
