// Package delivery holds the servers that expose the storefront use cases.
package delivery

import "context"

// Delivery is a long-running server started by the fx application.
// Serve blocks until the server stops; shutdown is driven by lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
