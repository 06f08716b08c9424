package commands

import (
	"VNumbers/internal/cli/api"
	"VNumbers/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type receiveCmd struct{}

func (receiveCmd) Name() string        { return "receive" }
func (receiveCmd) Description() string { return "Отправить входящее сообщение на номер" }
func (receiveCmd) Usage() string       { return "receive <number> <sender> <message...>" }

func (receiveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	payload := map[string]string{
		"virtual_number": args[0],
		"sender_name":    args[1],
		"message":        strings.Join(args[2:], " "),
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/receive-message"), payload, &resp); err != nil {
		return err
	}
	fmt.Fprintln(Out, resp.Message)
	return nil
}

type notificationsCmd struct{}

func (notificationsCmd) Name() string        { return "notifications" }
func (notificationsCmd) Description() string { return "Число непрочитанных сообщений" }
func (notificationsCmd) Usage() string       { return "notifications" }

func (notificationsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var resp struct {
		TotalNotification int64 `json:"total_notification"`
	}
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/notifications"), nil, &resp); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Непрочитанных: %d\n", resp.TotalNotification)
	return nil
}

func init() {
	RegisterCmd(GroupMessages, receiveCmd{})
	RegisterCmd(GroupMessages, notificationsCmd{})
}
