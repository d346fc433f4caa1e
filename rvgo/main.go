package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/cmd"
)

func main() {
	app := cmd.NewApp()
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			onInterrupt(os.Stderr, cancel)
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v", err)
			os.Exit(1)
		}
	}
}

// onInterrupt cancels the running command. The notice goes to w, never to
// stdout, where the register dump is written.
func onInterrupt(w io.Writer, cancel context.CancelFunc) {
	cancel()
	_, _ = fmt.Fprintln(w, "\r\nExiting...")
}
