package cmd

import (
	"fmt"

	adapterbrowser "frota/internal/adapters/browser"
)

// BrowserCmd manages the automated browser
type BrowserCmd struct {
	Install BrowserInstallCmd `cmd:"install" help:"Download the playwright driver and Chromium"`
}

// BrowserInstallCmd installs playwright's browser
type BrowserInstallCmd struct{}

// Run executes the browser install command
func (b *BrowserInstallCmd) Run(cli *CLI) error {
	if err := adapterbrowser.InstallPlaywright(); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	fmt.Println("Playwright and Chromium installed.")
	return nil
}
