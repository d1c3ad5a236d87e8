package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/shelf/internal/backend"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/config"
	"github.com/mmcdole/shelf/internal/log"
	"github.com/mmcdole/shelf/internal/store"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger    *slog.Logger
	logCloser io.Closer
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
		logger:     log.NullLogger(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var dir string
		if c.configFlag != nil {
			dir = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(dir)
		if err != nil {
			c.configErr = err
			return
		}
		if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
			cfg.Server.URL = strings.TrimSpace(*c.serverFlag)
		}

		logger, closer, err := log.SetupLogger(&cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = log.NullLogger()
		}
		slog.SetDefault(logger)
		c.logger = logger
		c.logCloser = closer
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) client() *backend.Client {
	cfg := c.configValue()
	return backend.NewClient(cfg.Server.URL, c.logger, backend.WithTimeout(cfg.Server.Timeout))
}

// withCatalog runs fn against a memory-only cache so one-shot commands
// never contend with a running browser for the database lock
func (c *commandContext) withCatalog(fn func(*catalog.Commands) error) error {
	cacheStore, err := store.NewCatalogStore("", "")
	if err != nil {
		return err
	}
	defer cacheStore.Close()
	return fn(catalog.NewCommands(c.client(), cacheStore, c.logger))
}

func (c *commandContext) close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}
