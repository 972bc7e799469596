// ptzcon - an interactive console for VISCA PTZ cameras on a serial line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ptzcon/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ptzcon: %v\n", err)
		os.Exit(1)
	}
}
