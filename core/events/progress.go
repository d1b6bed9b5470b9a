package events

import (
	"time"

	"github.com/flexworks/co2flex/core/model"
)

// CaseComputed is published after the full pipeline finished for one measure
// case.
type CaseComputed struct {
	TP         string
	Name       string
	LoadChange model.LoadChange
	Blocks     int
	Elapsed    time.Duration
}

// PairCombined is published when a load-reduction/load-increase pair was
// merged into a combination result. Combined is false when the two cycle
// lengths did not match and only the individual results were kept.
type PairCombined struct {
	TP       string
	Name     string
	Combined bool
}
