package commands

import (
	"VNumbers/internal/cli/api"
	"VNumbers/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type virtualNumber struct {
	ID              int64  `json:"id"`
	Number          string `json:"number"`
	Category        string `json:"category"`
	IsActive        bool   `json:"is_active"`
	IsMessageActive bool   `json:"is_message_active"`
	IsCallActive    bool   `json:"is_call_active"`
}

type numbersCmd struct{}

func (numbersCmd) Name() string        { return "numbers" }
func (numbersCmd) Description() string { return "Список виртуальных номеров" }
func (numbersCmd) Usage() string       { return "numbers [category]" }

func (numbersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	path := "/virtual-numbers"
	if len(args) == 1 {
		path += "?category=" + url.QueryEscape(args[0])
	}
	var list []virtualNumber
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, path), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет номеров")
		return nil
	}
	for _, vn := range list {
		fmt.Fprintf(Out, "- %d  %s  %-12s active=%t messages=%t calls=%t\n",
			vn.ID, vn.Number, vn.Category, vn.IsActive, vn.IsMessageActive, vn.IsCallActive)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type toggleCmd struct{}

func (toggleCmd) Name() string        { return "toggle" }
func (toggleCmd) Description() string { return "Переключить флаг номера" }
func (toggleCmd) Usage() string       { return "toggle <active|message|call> <id>" }

func (toggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	kind := strings.ToLower(args[0])
	switch kind {
	case "active", "message", "call":
	default:
		return ErrUsage
	}
	id, ok := parseID(args[1])
	if !ok {
		return ErrUsage
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, fmt.Sprintf("/toggle-%s/%d", kind, id)), nil, &resp); err != nil {
		return err
	}
	fmt.Fprintln(Out, resp.Message)
	return nil
}

type physicalAddCmd struct{}

func (physicalAddCmd) Name() string        { return "physical-add" }
func (physicalAddCmd) Description() string { return "Добавить физический номер" }
func (physicalAddCmd) Usage() string       { return "physical-add <number> <owner>" }

func (physicalAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload := map[string]string{"number": args[0], "owner_name": strings.Join(args[1:], " ")}
	var resp struct {
		ID     int64  `json:"id"`
		Number string `json:"number"`
	}
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/physical-numbers"), payload, &resp); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Физический номер добавлен: id=%d number=%s\n", resp.ID, resp.Number)
	return nil
}

func init() {
	RegisterCmd(GroupNumbers, numbersCmd{})
	RegisterCmd(GroupNumbers, toggleCmd{})
	RegisterCmd(GroupNumbers, physicalAddCmd{})
}
