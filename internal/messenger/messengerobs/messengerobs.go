package messengerobs

import (
	"context"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
)

// observableMessenger wraps a Messenger with observability (logging & tracing)
type observableMessenger struct {
	messenger interfaces.Messenger
}

// Compile-time interface check
var _ interfaces.Messenger = (*observableMessenger)(nil)

// Wrap wraps a messenger with observability middleware
func Wrap(messenger interfaces.Messenger) interfaces.Messenger {
	return &observableMessenger{
		messenger: messenger,
	}
}

func (om *observableMessenger) SendGroup(ctx context.Context, chatID int64, text string) error {
	ctx, span := trace.StartSpan(ctx, "messenger.SendGroup")
	defer span.End()

	if err := om.messenger.SendGroup(ctx, chatID, text); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to send group message", err, "chat_id", chatID)
		return err
	}

	logger.InfoSkip(ctx, 1, "Group message sent", "chat_id", chatID, "chars", len(text))
	return nil
}

func (om *observableMessenger) SendPrivate(ctx context.Context, userID int64, text string) error {
	ctx, span := trace.StartSpan(ctx, "messenger.SendPrivate")
	defer span.End()

	if err := om.messenger.SendPrivate(ctx, userID, text); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to send private message", err, "user_id", userID)
		return err
	}

	logger.InfoSkip(ctx, 1, "Private message sent", "user_id", userID, "chars", len(text))
	return nil
}
