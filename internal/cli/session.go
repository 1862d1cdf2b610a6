// Package cli implements the libtool subcommands. Each command owns its
// flag set and wires one client session: config → API client → store →
// controller → renderer.
package cli

import (
	"os"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/config"
	"github.com/mrlokans/libtool/internal/controller"
	"github.com/mrlokans/libtool/internal/render"
	"github.com/mrlokans/libtool/internal/store"
)

// session bundles the wired components one command invocation works with.
type session struct {
	cfg      *config.Config
	client   *api.Client
	store    *store.Store
	ctrl     *controller.Controller
	renderer *render.Renderer
}

// newSession builds a client session from the environment configuration.
// assumeYes answers every confirmation prompt positively, for scripted use.
func newSession(assumeYes bool) *session {
	cfg := config.NewConfig()
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	st := store.New()

	renderer := render.New(os.Stdout, os.Stdin)
	renderer.AssumeYes = assumeYes

	ctrl := controller.New(client, st, renderer, renderer, controller.NopLoadingSink{})

	return &session{
		cfg:      cfg,
		client:   client,
		store:    st,
		ctrl:     ctrl,
		renderer: renderer,
	}
}
