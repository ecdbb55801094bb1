package pubsub

import (
	"context"
	"time"
)

type Pack struct {
	Key []byte
	Msg []byte
}

type SubscribeHandler func(context.Context, *Pack, time.Time)

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}

type Subscriber interface {
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
