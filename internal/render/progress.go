package render

import (
	"github.com/schollz/progressbar/v3"

	"github.com/deploymenttheory/go-drivecap/internal/validation"
)

var phaseLabels = map[validation.Phase]string{
	validation.PhaseSnapshot: "Reading original blocks ",
	validation.PhaseWrite:    "Writing and verifying   ",
	validation.PhaseReadback: "Reading blocks          ",
	validation.PhaseRestore:  "Restoring original data ",
}

// Progress returns a ProgressFunc that drives one terminal bar per phase.
// Quiet mode returns a no-op so the engine stays silent.
func Progress(quiet bool) validation.ProgressFunc {
	if quiet {
		return func(validation.Phase, int, int) {}
	}
	var current validation.Phase = -1
	var bar *progressbar.ProgressBar
	return func(phase validation.Phase, done, total int) {
		if phase != current {
			if bar != nil {
				_ = bar.Finish()
			}
			current = phase
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(phaseLabels[phase]),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}
