package main

import (
	"log"

	"github.com/humanbelnik/flickswipe/internal/app"
	"github.com/humanbelnik/flickswipe/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	var configPath string
	root := newRootCmd(&configPath, func() (Importer, func(), error) {
		cfg, err := config.FromEnvFile(configPath)
		if err != nil {
			return nil, nil, err
		}
		catalog := app.MustBuildCatalog(cfg)
		return catalog.Movies, catalog.Close, nil
	})
	cobra.CheckErr(root.Execute())
}
