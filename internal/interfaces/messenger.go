package interfaces

import "context"

type Messenger interface {
	SendGroup(ctx context.Context, chatID int64, text string) error
	SendPrivate(ctx context.Context, userID int64, text string) error
}
