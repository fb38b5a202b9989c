package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/strata/pkg/mesh"
)

// exportCommand meshes a scene and writes an STL file.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		cfg        ExportConfig
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mesh a scene and export it as STL",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := applyConfigFile(configPath, &cfg); err != nil {
					return err
				}
			}

			gen, err := compileScene(cfg.Scene, cfg.Seed, cfg.MaxDistance)
			if err != nil {
				return err
			}

			c.Logger.Debug("compiled scene", "scene", cfg.Scene, "seed", cfg.Seed)
			start := time.Now()
			if err := mesh.ExportSTL(gen, cfg.Out, cfg.Cells); err != nil {
				return err
			}
			c.Logger.Info("exported mesh",
				"scene", cfg.Scene,
				"out", cfg.Out,
				"cells", cfg.Cells,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Scene, "scene", "asteroid", "scene to export")
	cmd.Flags().Uint32Var(&cfg.Seed, "seed", 0, "scene seed")
	cmd.Flags().IntVar(&cfg.Cells, "cells", 0, "marching cubes resolution (0 for default)")
	cmd.Flags().StringVar(&cfg.Out, "out", "strata.stl", "output STL path")
	cmd.Flags().Float32Var(&cfg.MaxDistance, "max-distance", 0, "clamp distance enabling culling (0 disables)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding the flags above")

	return cmd
}
