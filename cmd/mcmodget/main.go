package main

import (
	"mcmodget/internal/app"
)

func main() {
	ctx, stop := app.SignalContext()
	defer stop()

	ExecuteContext(ctx)
}
