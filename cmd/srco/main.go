package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMessage("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
