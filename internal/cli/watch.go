package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phanxgames/choreo/internal/tui"
)

func newWatchCmd() *cobra.Command {
	var (
		fps  int
		loop bool
	)

	cmd := &cobra.Command{
		Use:   "watch <scene.yaml>",
		Short: "Animate a scene in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if fps <= 0 {
				fps = cfg.Playback.FPS
			}
			script, build, err := loadScene(ctx, args[0])
			if err != nil {
				return err
			}
			opts := tui.Options{
				FPS:    fps,
				Speed:  cfg.Playback.Speed,
				Width:  float64(cfg.Window.Width),
				Height: float64(cfg.Window.Height),
			}
			if loop {
				opts.Duration = sceneDuration(0, script)
			}
			p := tea.NewProgram(tui.New(build, opts), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (default from choreo.toml)")
	cmd.Flags().BoolVar(&loop, "loop", false, "restart the scene after its duration")
	return cmd
}
