package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mauv0809/nextpick/internal/client"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/view"
)

// reportedError marks an error whose message was already printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// app bundles what every command needs.
type app struct {
	api      *client.APIClient
	session  *view.Session
	renderer *view.Renderer
	out      io.Writer
}

// baseURL picks the server address: --host, then the local config file,
// then the built-in default.
func baseURL() string {
	if host != "" {
		return host
	}
	if cfg, err := config.LoadClubFile(configPath); err == nil {
		return cfg.API.BaseURL
	}
	return config.DefaultClub().API.BaseURL
}

// newApp resolves the club config and, when refresh is set, loads the
// first snapshot.
func newApp(ctx context.Context, refresh bool) (*app, error) {
	api := client.NewClient(baseURL())
	cfg := config.Resolve(ctx, configPath, api)
	a := &app{
		api:      api,
		session:  view.NewSession(api, cfg),
		renderer: view.NewRenderer(cfg.UI.Theme),
		out:      os.Stdout,
	}
	if refresh {
		if err := a.session.Refresh(ctx); err != nil {
			return nil, a.fail(err)
		}
	}
	return a, nil
}

// fail prints err as a banner and marks it as reported.
func (a *app) fail(err error) error {
	fmt.Fprintln(os.Stderr, a.renderer.Banner(err))
	return &reportedError{err: err}
}

// done prints the server's message followed by the refreshed view.
func (a *app) done(msg string) error {
	if msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	fmt.Fprintln(a.out, a.renderer.Render(a.session))
	return nil
}

// confirm asks a yes/no question on stdin. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
