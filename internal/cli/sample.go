package cli

import (
	"fmt"
	"time"

	"github.com/soypat/glgl/math/ms3"
	"github.com/spf13/cobra"

	"github.com/chazu/strata/pkg/scene"
	"github.com/chazu/strata/pkg/sdfgen"
)

// scenesCommand lists the registered scene builders.
func (c *CLI) scenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range scene.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// sampleCommand evaluates one block of signed distances and reports
// field statistics.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		sceneName   string
		seed        uint32
		size        int
		origin      []float32
		maxDistance float32
		exact       bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate a block of signed distances for a scene",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if len(origin) != 3 {
				return fmt.Errorf("--origin needs exactly 3 components, got %d", len(origin))
			}

			gen, err := compileScene(sceneName, seed, maxDistance)
			if err != nil {
				return err
			}
			blockOrigin := ms3.Vec{X: origin[0], Y: origin[1], Z: origin[2]}

			buf := gen.NewBlockBuffers(size)
			start := time.Now()
			if exact {
				gen.SignedDistancesForBlockPreservingGradients(buf, blockOrigin)
			} else {
				gen.SignedDistancesForBlock(buf, sdfgen.BlockAABB(blockOrigin, size))
			}
			elapsed := time.Since(start)

			lo, hi, interior := summarize(buf.SignedDistances())
			c.Logger.Info("sampled block",
				"scene", sceneName,
				"seed", seed,
				"origin", fmt.Sprintf("(%g, %g, %g)", blockOrigin.X, blockOrigin.Y, blockOrigin.Z),
				"samples", size*size*size,
				"exact", exact,
				"elapsed", elapsed.Round(time.Microsecond),
			)
			c.Logger.Info("field statistics",
				"min", lo,
				"max", hi,
				"interior", interior,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&sceneName, "scene", "asteroid", "scene to evaluate")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "scene seed")
	cmd.Flags().IntVar(&size, "size", 16, "samples per block axis")
	cmd.Flags().Float32SliceVar(&origin, "origin", []float32{0, 0, 0}, "lowest sample position x,y,z")
	cmd.Flags().Float32Var(&maxDistance, "max-distance", 0, "clamp distance enabling culling (0 disables)")
	cmd.Flags().BoolVar(&exact, "exact", false, "use gradient-preserving evaluation")

	return cmd
}

// compileScene builds the named scene and compiles it, with culling
// enabled when maxDistance is positive.
func compileScene(name string, seed uint32, maxDistance float32) (*sdfgen.Generator, error) {
	g, err := scene.Build(name, seed)
	if err != nil {
		return nil, err
	}
	if maxDistance > 0 {
		return g.BuildWithMaxDistance(maxDistance)
	}
	return g.Build()
}

func summarize(dist []float32) (lo, hi float32, interior int) {
	if len(dist) == 0 {
		return 0, 0, 0
	}
	lo, hi = dist[0], dist[0]
	for _, d := range dist {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
		if d < 0 {
			interior++
		}
	}
	return lo, hi, interior
}
