package events

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("events",
	fx.Provide(NewAMQP),
	fx.Invoke(func(lc fx.Lifecycle, p Publisher) {
		closer, ok := p.(interface{ Close() error })
		if !ok {
			return
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}),
)
