package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/humanbelnik/flickswipe/internal/model"
	usecase_movie "github.com/humanbelnik/flickswipe/internal/usecase/movie"
	"github.com/spf13/cobra"
)

type Importer interface {
	Import(ctx context.Context, tmdbID int) (model.Movie, error)
	ImportPopular(ctx context.Context, pages int) (int, error)
}

// Connector opens the catalog lazily so --help works without a database.
type Connector func() (Importer, func(), error)

func newRootCmd(configPath *string, connect Connector) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Manage the movie catalog games are drawn from.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(configPath, "config", "", "path to env file")
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.AddCommand(newImportCmd(connect), newPopularCmd(connect))
	return root
}

func newImportCmd(connect Connector) *cobra.Command {
	return &cobra.Command{
		Use:   "import <tmdb_id>...",
		Short: "Import titles by their TMDB ids.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil || id <= 0 {
					return fmt.Errorf("bad tmdb id %q", arg)
				}
				ids = append(ids, id)
			}

			importer, closeFn, err := connect()
			if err != nil {
				return err
			}
			defer closeFn()

			var failed int
			for _, id := range ids {
				movie, err := importer.Import(cmd.Context(), id)
				switch {
				case errors.Is(err, usecase_movie.ErrAlreadyExists):
					cmd.Printf("%d: already in catalog\n", id)
				case err != nil:
					failed++
					cmd.PrintErrf("%d: %v\n", id, err)
				default:
					cmd.Printf("%d: imported %q as %s\n", id, movie.Title, movie.ID)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d imports failed", failed, len(ids))
			}
			return nil
		},
	}
}

func newPopularCmd(connect Connector) *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Seed the catalog from TMDB popular lists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages <= 0 {
				return fmt.Errorf("invalid --pages: %d", pages)
			}

			importer, closeFn, err := connect()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := importer.ImportPopular(cmd.Context(), pages)
			if err != nil {
				return err
			}
			cmd.Printf("imported %d movies\n", n)
			return nil
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of popular pages to walk")
	return cmd
}
