package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/choreo"
	"github.com/phanxgames/choreo/internal/play"
)

func newPlayCmd() *cobra.Command {
	var (
		loop    bool
		showFPS bool
	)

	cmd := &cobra.Command{
		Use:   "play <scene.yaml>",
		Short: "Animate a scene in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			script, build, err := loadScene(ctx, args[0])
			if err != nil {
				return err
			}
			pc := play.Config{
				Title:      cfg.Window.Title,
				Width:      cfg.Window.Width,
				Height:     cfg.Window.Height,
				Speed:      cfg.Playback.Speed,
				ShowFPS:    showFPS,
				Background: choreo.Color{R: 0.1, G: 0.1, B: 0.15, A: 1},
			}
			if loop {
				pc.Duration = sceneDuration(0, script)
			}
			loggerFromContext(ctx).Info("Opening window", "title", pc.Title, "size", [2]int{pc.Width, pc.Height})
			return play.Run(build, pc)
		},
	}

	cmd.Flags().BoolVar(&loop, "loop", true, "restart the scene after its duration")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show an FPS overlay")
	return cmd
}
