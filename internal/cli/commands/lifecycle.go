package commands

import (
	"VNumbers/internal/cli/api"
	"VNumbers/internal/config"
	"context"
	"fmt"
	"net/http"
	"sort"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Удалить виртуальный номер (его можно восстановить)" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, ok := parseID(args[0])
	if !ok {
		return ErrUsage
	}
	var resp struct {
		Message  string `json:"message"`
		Number   string `json:"number"`
		Category string `json:"category"`
	}
	if err := api.Call(ctx, http.MethodDelete, endpoint(cfg, fmt.Sprintf("/virtual-number/%d", id)), nil, &resp); err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s: %s (%s)\n", resp.Message, resp.Number, resp.Category)
	return nil
}

type restoreCmd struct{}

func (restoreCmd) Name() string        { return "restore" }
func (restoreCmd) Description() string { return "Восстановить последний удалённый номер" }
func (restoreCmd) Usage() string       { return "restore" }

func (restoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var resp struct {
		Message          string `json:"message"`
		RestoredNumber   string `json:"restored_number"`
		MessagesRestored int    `json:"messages_restored"`
	}
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/restore"), nil, &resp); err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s: %s, messages: %d\n", resp.Message, resp.RestoredNumber, resp.MessagesRestored)
	return nil
}

type cooldownsCmd struct{}

func (cooldownsCmd) Name() string        { return "cooldowns" }
func (cooldownsCmd) Description() string { return "Показать таймеры категорий" }
func (cooldownsCmd) Usage() string       { return "cooldowns" }

func (cooldownsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var resp map[string]struct {
		Status                string  `json:"status"`
		LastDeleted           string  `json:"last_deleted"`
		LastRecovered         string  `json:"last_recovered"`
		RecoveryRemainingTime *string `json:"recovery_remaining_time"`
	}
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/cooldowns"), nil, &resp); err != nil {
		return err
	}
	cats := make([]string, 0, len(resp))
	for c := range resp {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		st := resp[c]
		recovery := "-"
		if st.RecoveryRemainingTime != nil {
			recovery = *st.RecoveryRemainingTime
		}
		fmt.Fprintf(Out, "- %-13s %s  deleted=%s  recovered=%s  recovery=%s\n",
			c, st.Status, st.LastDeleted, st.LastRecovered, recovery)
	}
	return nil
}

func init() {
	RegisterCmd(GroupLifecycle, deleteCmd{})
	RegisterCmd(GroupLifecycle, restoreCmd{})
	RegisterCmd(GroupLifecycle, cooldownsCmd{})
}
