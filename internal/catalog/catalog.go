// Package catalog caches the read-mostly reference data of the order
// service: stores, units and users.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/roles"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/view"
)

var (
	ErrEmptyUnit   = errors.New("unit name cannot be empty")
	ErrUnknownUser = errors.New("unknown user")
)

type Source interface {
	GetStores(ctx context.Context) ([]types.Store, error)
	GetUnits(ctx context.Context) ([]string, error)
	GetUsers(ctx context.Context) ([]types.User, error)
	AddUnit(ctx context.Context, name string) error
}

type Snapshot struct {
	Stores []types.Store `json:"stores"`
	Units  []string      `json:"units"`
	Users  []types.User  `json:"users"`
}

type Catalog struct {
	source Source

	mu     sync.RWMutex
	stores []types.Store
	names  view.StoreNames
	units  []string
	users  []types.User
}

func New(source Source) *Catalog {
	return &Catalog{source: source, names: view.StoreNames{}}
}

// Refresh reloads everything from the order service. The cached data is
// replaced only when all three calls succeed.
func (c *Catalog) Refresh(ctx context.Context) error {
	stores, err := c.source.GetStores(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	units, err := c.source.GetUnits(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	users, err := c.source.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = stores
	c.names = view.NewStoreNames(stores)
	c.units = units
	c.users = users
	logger.Infof("Catalog refreshed: %d stores, %d units, %d users", len(stores), len(units), len(users))
	return nil
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Stores: slices.Clone(c.stores),
		Units:  slices.Clone(c.units),
		Users:  slices.Clone(c.users),
	}
}

func (c *Catalog) StoreNames() view.StoreNames {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names
}

func (c *Catalog) User(username string) (types.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if u.Username == username {
			return u, nil
		}
	}
	return types.User{}, fmt.Errorf("%w: %s", ErrUnknownUser, username)
}

// Assignable lists the users the actor may pick as actionRole.
func (c *Catalog) Assignable(actor types.User) []types.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return roles.Assignable(c.users, actor.Role)
}

// AddUnit appends a unit to the shared list. Only privileged users may do it.
func (c *Catalog) AddUnit(ctx context.Context, actor types.User, name string) error {
	if !roles.Privileged(actor.Role) {
		return roles.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUnit
	}

	c.mu.RLock()
	exists := slices.Contains(c.units, name)
	c.mu.RUnlock()
	if exists {
		return nil
	}

	if err := c.source.AddUnit(ctx, name); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.units, name) {
		c.units = append(c.units, name)
	}
	logger.Infof("Unit %s added by %s", name, actor.Username)
	return nil
}
