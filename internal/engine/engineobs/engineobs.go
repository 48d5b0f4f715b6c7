package engineobs

import (
	"context"
	"time"

	"github.com/isaacbatst/felip-ai-sub001/internal/interfaces"
	"github.com/isaacbatst/felip-ai-sub001/internal/logger"
	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) HandleMessage(ctx context.Context, msg types.InboundMessage) (*types.HandleResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.HandleMessage")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting message handling",
		"message_id", msg.ID,
		"owner_id", msg.OwnerID,
		"chat_id", msg.ChatID,
	)

	result, err := oe.engine.HandleMessage(ctx, msg)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Message handling failed", err,
			"message_id", msg.ID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Message handling completed",
		"message_id", result.MessageID,
		"action", string(result.Action.Kind),
		"reason", result.Reason,
		"program_id", result.ProgramID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
