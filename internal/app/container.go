// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/infra/config"
	"github.com/runoshun/changelog-generator/internal/infra/git"
	"github.com/runoshun/changelog-generator/internal/infra/github"
	"github.com/runoshun/changelog-generator/internal/infra/logging"
	"github.com/runoshun/changelog-generator/internal/usecase"
)

// HTTPTimeout bounds a single search API request.
const HTTPTimeout = 30 * time.Second

// Config holds the application environment.
type Config struct {
	WorkDir          string // Working directory holding the config file and the git checkout
	GlobalConfigPath string // Global config file, empty when no config home is available
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	IssueClient    domain.IssueClient
	Clock          domain.Clock
	ConfigLoader   domain.ConfigLoader
	ConfigManager  domain.ConfigManager
	RemoteResolver domain.RemoteResolver
	Logger         domain.Logger

	// Pointer fields
	LogLevel *slog.LevelVar // Adjusted once flags and config file are known

	// Configuration
	Config Config

	logOut      io.Writer       // Console destination of the logs
	logFile     *logging.Logger // Logger owning the open log file, nil when none
	logFilePath string
}

// New creates a new Container for the given working directory.
// An empty dir selects the process working directory.
// Logs go to stderr at the default level until SetLogLevel is called.
func New(dir string) (*Container, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	return newContainer(dir, os.Stderr), nil
}

func newContainer(dir string, logOut io.Writer) *Container {
	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(domain.DefaultLogLevel))
	loader := config.NewLoader(dir)

	return &Container{
		IssueClient:    github.NewClient(&http.Client{Timeout: HTTPTimeout}),
		Clock:          domain.RealClock{},
		ConfigLoader:   loader,
		ConfigManager:  config.NewManager(dir),
		RemoteResolver: git.NewRemoteResolver(),
		Logger:         logging.New(logOut, level),
		LogLevel:       level,
		logOut:         logOut,
		Config: Config{
			WorkDir:          dir,
			GlobalConfigPath: loader.GlobalConfigPath(),
		},
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, client domain.IssueClient, loader domain.ConfigLoader, manager domain.ConfigManager, resolver domain.RemoteResolver, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		IssueClient:    client,
		Clock:          clock,
		ConfigLoader:   loader,
		ConfigManager:  manager,
		RemoteResolver: resolver,
		Logger:         logger,
		LogLevel:       new(slog.LevelVar),
		Config:         cfg,
	}
}

// SetLogLevel changes the level of the container logger.
func (c *Container) SetLogLevel(level string) {
	if c.LogLevel != nil {
		c.LogLevel.Set(logging.ParseLevel(level))
	}
}

// SetLogFile makes the logger append to the file at path besides the
// console. A relative path is resolved against the working directory.
// An empty path keeps the current logger.
func (c *Container) SetLogFile(path string) error {
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Config.WorkDir, path)
	}
	if c.logFile != nil && c.logFilePath == path {
		return nil
	}

	logger, err := logging.NewWithFile(c.logOut, path, c.LogLevel)
	if err != nil {
		return err
	}
	if err := c.Close(); err != nil {
		_ = logger.Close()
		return err
	}
	c.logFile = logger
	c.logFilePath = path
	c.Logger = logger
	return nil
}

// Close releases the log file opened by SetLogFile, if any.
func (c *Container) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	c.logFilePath = ""
	return err
}

// UseCase factory methods

// GenerateChangelogUseCase returns a new GenerateChangelog use case.
func (c *Container) GenerateChangelogUseCase() *usecase.GenerateChangelog {
	fetcher := usecase.NewIssueFetcher(c.IssueClient, c.Logger)
	return usecase.NewGenerateChangelog(usecase.NewIssueRepository(fetcher), c.Clock, c.Logger)
}

// ResolveConfigUseCase returns a new ResolveConfig use case.
func (c *Container) ResolveConfigUseCase() *usecase.ResolveConfig {
	return usecase.NewResolveConfig(c.ConfigLoader, c.RemoteResolver, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ResolveConfigUseCase())
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate(c.RemoteResolver)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager, c.RemoteResolver)
}
