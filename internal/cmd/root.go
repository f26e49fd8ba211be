package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"frota/internal/config"
	"frota/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d" env:"FROTA_DEBUG"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)" env:"FROTA_DEBUG_FILE"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"200" env:"FROTA_MAX_LOG_FILES"`

	Billing   BillingCmd   `cmd:"billing" help:"Billing portal operations"`
	Browser   BrowserCmd   `cmd:"browser" help:"Manage the automated browser"`
	Deinstall DeinstallCmd `cmd:"deinstall" help:"Deinstall every active subscription record of each chassis"`
	Group     GroupCmd     `cmd:"group" help:"Add or remove vehicles from a vehicle group"`
	Odometer  OdometerCmd  `cmd:"odometer" help:"Add an odometer adjustment to each vehicle"`
	Profile   ProfileCmd   `cmd:"profile" help:"Inspect the portal profile"`
	Runs      RunsCmd      `cmd:"runs" help:"Inspect the run history (list, show, del)"`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (meta)"`
	Setup     SetupCmd     `cmd:"setup" help:"Fill description, plate, chassis and group of each vehicle"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// loadedSettings returns the settings, never nil
func (c *CLI) loadedSettings() *config.Settings {
	if c.settings == nil {
		return &config.Settings{}
	}
	return c.settings
}

// LoadDotEnv reads .env from the working directory. Variables already set win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// A setting only applies when the flag is at its default and no env var is set.
	s := c.loadedSettings()
	if c.MaxLogFiles == logging.DefaultMaxLogFiles && s.MaxLogFiles != nil {
		if _, hasEnv := os.LookupEnv("FROTA_MAX_LOG_FILES"); !hasEnv {
			c.MaxLogFiles = *s.MaxLogFiles
		}
	}
	if !c.Debug && s.Debug != nil && *s.Debug {
		if _, hasEnv := os.LookupEnv("FROTA_DEBUG"); !hasEnv {
			c.Debug = true
		}
	}

	if _, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	// Container after logging so the gorm logger bridge has a live Logger
	container, err := NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
