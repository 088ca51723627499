package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/pokegate/internal/client/client"
	"github.com/dmitrijs2005/pokegate/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run prints a greeting, picks up an existing session if the server
// reports one and then blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to pokegate CLI (type 'help' for commands), server:", a.config.ServerURL)
	if err := a.Status(ctx); err != nil {
		printlnFn("Error:", describe(err))
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(guest)"
	}
	return "(" + a.userName + ")"
}
