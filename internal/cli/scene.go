package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/choreo"
)

// defaultDuration is how long bake runs a script that names no duration.
const defaultDuration = 2.0

// loadScene reads a scene script and returns it with a factory producing
// fresh scenes from it. Scenes log through the command's logger and report
// per-frame stats when it is at debug level.
func loadScene(ctx context.Context, path string) (*choreo.Script, func() (*choreo.Scene, error), error) {
	logger := loggerFromContext(ctx)
	script, err := choreo.LoadScriptFile(path)
	if err != nil {
		return nil, nil, err
	}
	build := func() (*choreo.Scene, error) {
		scene, err := script.Build()
		if err != nil {
			return nil, err
		}
		scene.SetLogger(logger)
		scene.SetDebugMode(logger.GetLevel() <= log.DebugLevel)
		return scene, nil
	}
	if _, err := build(); err != nil {
		return nil, nil, err
	}
	logger.Debug("scene loaded", "path", path, "nodes", len(script.Nodes))
	return script, build, nil
}

// sceneDuration picks the run length: the flag, then the script, then the
// default.
func sceneDuration(flag float64, script *choreo.Script) float64 {
	switch {
	case flag > 0:
		return flag
	case script.Duration > 0:
		return script.Duration
	}
	return defaultDuration
}
