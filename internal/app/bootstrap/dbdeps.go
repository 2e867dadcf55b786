// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. Every
// repository reaches MongoDB through the single Gateway; nothing else
// holds a client.
type DBDeps struct {
	Gateway *gateway.Gateway
}
