package metrics

import (
	"context"

	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"go.uber.org/fx"
)

// WatchStore counts every change notification of the store for as long as the
// application runs.
func WatchStore(lc fx.Lifecycle, store repository.Store, recorder service.MetricsRecorder) {
	var unsubscribe func()

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			unsubscribe = store.Subscribe("", func(change repository.StoreChange) {
				recorder.StoreChange(change.Key, change.Remote)
			})

			return nil
		},
		OnStop: func(context.Context) error {
			if unsubscribe != nil {
				unsubscribe()
			}

			return nil
		},
	})
}
