package service

import "time"

// MetricsRecorder receives the storefront business counters.
type MetricsRecorder interface {
	CartMutation(command string)
	PromoApplied(applied bool)
	OrderPlaced(paymentMethod string, elapsed time.Duration)
	OrderFailed(reason string)
	StoreChange(key string, remote bool)
}
