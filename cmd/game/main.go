package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/mkolar/ringout/internal/host"
	"github.com/mkolar/ringout/internal/roster"
	"github.com/mkolar/ringout/internal/spectator"
)

func main() {
	entrants := host.EntrantsFromEnv()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// The terminal is in raw mode; keep the loop's log output off the screen.
	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)

	srv := host.NewServer(host.ConfigFromEnv(), roster.Pick(entrants), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	reader := bufio.NewReader(os.Stdin)
	c := spectator.NewClient(srv, reader, os.Stdout, spectator.Options{Name: "local"})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "spectator error: %v\n", err)
		os.Exit(1)
	}
}
