// Package delivery defines the contract every transport implementation serves.
package delivery

import "context"

// Delivery is a running transport (HTTP server, worker, ...) managed by the
// application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
