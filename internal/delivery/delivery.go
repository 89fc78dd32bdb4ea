// Package delivery defines the process entry points started by main.
package delivery

import "context"

// Delivery is a long-running server started from main
type Delivery interface {
	Serve(ctx context.Context) error
}
