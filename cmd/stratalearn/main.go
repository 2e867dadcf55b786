// cmd/stratalearn/main.go
package main

import (
	"context"

	"github.com/dalemusser/stratalearn/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

// main hands the lifecycle to WAFFLE. app.Run drives the hooks in order:
// config loading, validation, DB connect, schema, startup, HTTP serving,
// and graceful shutdown on SIGINT/SIGTERM.
func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
