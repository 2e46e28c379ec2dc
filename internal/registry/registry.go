// Package registry implements create, list, move, and delete operations on
// the holstered MCP server set.
//
// Every operation is a fresh load-modify-save cycle against the store. Batch
// operations (SetStatus, Delete) validate every name before mutating, so a
// failing batch commits nothing.
package registry

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	holsterrors "github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/server"
	"github.com/thoreinstein/holster/internal/store"
)

// Registry manages the active/inactive server partition through a Store.
type Registry struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a Registry over the given store.
func New(st *store.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: st, logger: logger}
}

// Create registers a new server in the active bucket.
// Returns ErrDuplicateName if the name exists in either bucket.
func (r *Registry) Create(srv *server.Server) error {
	if srv == nil || srv.Name == "" {
		return holsterrors.ErrMissingName
	}

	doc, err := r.store.Load()
	if err != nil {
		return err
	}

	if doc.Contains(srv.Name) {
		return errors.Wrapf(holsterrors.ErrDuplicateName, "%q", srv.Name)
	}

	doc.Active[srv.Name] = srv
	if err := r.store.Save(doc); err != nil {
		return err
	}

	r.logger.Debug("created server", "name", srv.Name, "command", srv.Command)
	return nil
}

// CreateFromParts registers a new active server whose args follow the uv
// launch convention: --directory <directory> run <script>.
func (r *Registry) CreateFromParts(name, command, directory, script string) (*server.Server, error) {
	srv := server.NewFromParts(name, command, directory, script)
	if err := r.Create(srv); err != nil {
		return nil, err
	}
	return srv, nil
}

// List returns the active and inactive buckets as currently persisted.
func (r *Registry) List() (active, inactive map[string]*server.Server, err error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, nil, err
	}
	return doc.Active, doc.Inactive, nil
}

// SetStatus moves each named server to the active (true) or inactive (false)
// bucket. Each name must currently reside in the opposite bucket; the first
// name that does not fails the whole batch with ErrNotFound and nothing is
// committed.
func (r *Registry) SetStatus(names []string, active bool) error {
	doc, err := r.store.Load()
	if err != nil {
		return err
	}

	from, to := doc.Active, doc.Inactive
	if active {
		from, to = doc.Inactive, doc.Active
	}

	// Validate the whole batch before touching either bucket.
	for _, name := range names {
		if _, ok := from[name]; !ok {
			return errors.Wrapf(holsterrors.ErrNotFound, "server %q", name)
		}
	}

	for _, name := range names {
		to[name] = from[name]
		delete(from, name)
	}

	if err := r.store.Save(doc); err != nil {
		return err
	}

	r.logger.Debug("updated server status", "names", names, "active", active)
	return nil
}

// Delete removes each named server from whichever bucket holds it.
// A name absent from both buckets fails the whole batch with ErrNotFound and
// nothing is committed.
func (r *Registry) Delete(names []string) error {
	doc, err := r.store.Load()
	if err != nil {
		return err
	}

	for _, name := range names {
		if !doc.Contains(name) {
			return errors.Wrapf(holsterrors.ErrNotFound, "server %q", name)
		}
	}

	for _, name := range names {
		delete(doc.Active, name)
		delete(doc.Inactive, name)
	}

	if err := r.store.Save(doc); err != nil {
		return err
	}

	r.logger.Debug("deleted servers", "names", names)
	return nil
}
