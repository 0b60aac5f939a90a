// Package app wires the components over one record store.
package app

import (
	"github.com/pbaille/ventures/internal/acknowledgment"
	"github.com/pbaille/ventures/internal/api"
	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/identity"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/pitch"
	"github.com/pbaille/ventures/internal/store"
	"github.com/pbaille/ventures/internal/watchlist"
)

// App holds the wired components
type App struct {
	Store           store.RecordStore
	Catalog         *catalog.Catalog
	Identity        *identity.Resolver
	Notifications   *notification.Dispatcher
	Watchlist       *watchlist.Manager
	Acknowledgments *acknowledgment.Workflow
	Pitch           *pitch.Service
}

// New wires every component to s. gen may be nil, in which case pitch
// generation reports a configuration error.
func New(s store.RecordStore, gen pitch.Generator, log *logger.Logger) *App {
	log = logger.OrNop(log)

	cat := catalog.New(s)
	ident := identity.NewResolver(s)
	notes := notification.NewDispatcher(s, log)

	return &App{
		Store:           s,
		Catalog:         cat,
		Identity:        ident,
		Notifications:   notes,
		Watchlist:       watchlist.NewManager(s, log).WithNotifications(notes, ident),
		Acknowledgments: acknowledgment.NewWorkflow(s, cat, ident, notes, log),
		Pitch:           pitch.NewService(gen, log),
	}
}

// APIDeps adapts the app for the HTTP server
func (a *App) APIDeps() api.Deps {
	return api.Deps{
		Catalog:         a.Catalog,
		Watchlist:       a.Watchlist,
		Acknowledgments: a.Acknowledgments,
		Notifications:   a.Notifications,
		Identity:        a.Identity,
		Pitch:           a.Pitch,
	}
}
