package cmd

import (
	"fmt"
	"os"
	"strings"

	"frota/internal/config"
	"frota/internal/paths"
)

// ProfileCmd inspects the portal profile
type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"show" help:"Print the effective portal profile as TOML" default:"1"`
}

// ProfileShowCmd prints the merged profile
type ProfileShowCmd struct {
	Profile string `help:"Profile TOML merged over the built-in one" env:"FROTA_PROFILE"`
	Portals bool   `help:"Only list portal names"`
}

// Run executes the show command
func (p *ProfileShowCmd) Run(cli *CLI) error {
	path := p.Profile
	if path == "" {
		path = cli.loadedSettings().Profile
	}
	profile, err := config.LoadProfile(paths.ExpandPath(path))
	if err != nil {
		return err
	}

	if p.Portals {
		fmt.Println(strings.Join(profile.Names(), "\n"))
		return nil
	}

	data, err := profile.Encode()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
