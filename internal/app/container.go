package app

import (
	"context"
	"io"

	"github.com/doeshing/fishfix/internal/application/fix"
	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/infrastructure/config"
	"github.com/doeshing/fishfix/internal/infrastructure/history"
	"github.com/doeshing/fishfix/internal/pkg/logger"
	"github.com/doeshing/fishfix/internal/ports"
)

// Streams are the standard streams the container binds to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config     domain.Config
	FixService *fix.Service
	Logger     *logger.StdLogger
}

// BuildContainer constructs the dependency graph. verbose forces debug logging on
// top of the config file preference.
func BuildContainer(ctx context.Context, configPath string, verbose bool, streams Streams) (*Container, error) {
	var cfgLoader ports.ConfigProvider = config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(streams.Err, verbose || cfg.Preferences.Verbose)
	files := history.NewFileStore(streams.In, streams.Out)

	fixService := &fix.Service{
		Source:      files,
		Sink:        files,
		OpenArchive: history.OpenArchive,
		Logger:      log,
	}

	return &Container{
		Config:     cfg,
		FixService: fixService,
		Logger:     log,
	}, nil
}
