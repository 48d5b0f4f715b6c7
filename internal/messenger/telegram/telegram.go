// Package telegram delivers outbound quotes through the Telegram bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
)

type Messenger struct {
	botToken string
}

var _ interfaces.Messenger = (*Messenger)(nil)

func New(botToken string) *Messenger {
	return &Messenger{botToken: botToken}
}

func (m *Messenger) SendGroup(ctx context.Context, chatID int64, text string) error {
	return m.send(ctx, chatID, text)
}

func (m *Messenger) SendPrivate(ctx context.Context, userID int64, text string) error {
	return m.send(ctx, userID, text)
}

type tgMsg struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func (m *Messenger) send(ctx context.Context, chatID int64, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", m.botToken)

	data, err := json.Marshal(tgMsg{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram api returned status %s", res.Status)
	}

	return nil
}
