// Package dryrun is the DRY_RUN messenger: outbound messages are logged,
// never delivered.
package dryrun

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
)

type Messenger struct{}

var _ interfaces.Messenger = (*Messenger)(nil)

func New() *Messenger {
	return &Messenger{}
}

func (m *Messenger) SendGroup(ctx context.Context, chatID int64, text string) error {
	logger.Info(ctx, "DRY_RUN group message", "chat_id", chatID, "text", text)
	return nil
}

func (m *Messenger) SendPrivate(ctx context.Context, userID int64, text string) error {
	logger.Info(ctx, "DRY_RUN private message", "user_id", userID, "text", text)
	return nil
}
