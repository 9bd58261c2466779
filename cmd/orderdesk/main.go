package main

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/catalog"
	"github.com/wellywell/orderdesk/internal/compress"
	"github.com/wellywell/orderdesk/internal/config"
	"github.com/wellywell/orderdesk/internal/db"
	"github.com/wellywell/orderdesk/internal/desk"
	"github.com/wellywell/orderdesk/internal/handlers"
	"github.com/wellywell/orderdesk/internal/prefs"
	"github.com/wellywell/orderdesk/internal/router"
)

const catalogRefreshInterval = 5 * time.Minute

func newPrefsStore(conf *config.ServerConfig) (prefs.Store, error) {
	if conf.DatabaseDSN != "" {
		return db.NewDatabase(conf.DatabaseDSN)
	}
	return prefs.NewFileStore(conf.PrefsPath)
}

func refreshCatalog(cat *catalog.Catalog) {
	ticker := time.NewTicker(catalogRefreshInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := cat.Refresh(context.Background()); err != nil {
			logger.Warnf("Catalog refresh failed: %v", err)
		}
	}
}

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	level, err := logger.ParseLevel(conf.LogLevel)
	if err != nil {
		panic(err)
	}
	logger.SetLevel(level)

	client := backend.NewClient(conf.BackendAddress)

	cat := catalog.New(client)
	if err := cat.Refresh(context.Background()); err != nil {
		logger.Warnf("Starting without catalog: %v", err)
	}
	go refreshCatalog(cat)

	store, err := newPrefsStore(conf)
	if err != nil {
		panic(err)
	}

	registry := desk.NewRegistry(client, cat)
	handlerSet := handlers.NewHandlerSet([]byte(conf.Secret), conf.AuthCookieExpiresIn, cat, registry, store)

	r := router.NewRouter(conf, handlerSet, compress.RequestUngzipper{})

	logger.Infof("Listening on %s, order service at %s", conf.RunAddress, conf.BackendAddress)
	err = r.ListenAndServe()
	if err != nil {
		panic(err)
	}

}
