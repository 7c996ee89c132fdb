package configurator

import (
	"showroom/internal/catalog"
	"showroom/internal/instance"
)

type Status int

const (
	// Idle means no instance exists or is being built for the selection.
	Idle Status = iota
	Loading
	Ready
	Failed
)

var statusNames = [...]string{"idle", "loading", "ready", "failed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// State is the UI-visible snapshot of a Configurator.
//
// Instance is set only when Status is Ready. Displayed is the most recent
// Ready instance the user selected, which stays on screen while a newer
// selection is Loading or Failed.
type State struct {
	ModelID string
	Color   catalog.ColorOption
	Status  Status
	Err     error

	Instance         *instance.Instance
	Displayed        *instance.Instance
	DisplayedModelID string
}

func (s State) equal(o State) bool {
	return s.ModelID == o.ModelID &&
		s.Color == o.Color &&
		s.Status == o.Status &&
		s.Instance == o.Instance &&
		s.Displayed == o.Displayed &&
		s.DisplayedModelID == o.DisplayedModelID &&
		sameErr(s.Err, o.Err)
}

func sameErr(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Error() == b.Error()
}

// Diagnostics are counters for problems that do not fail an operation.
type Diagnostics struct {
	// ZeroMatch counts, per model, colors applied to an instance that has no
	// paintable parts.
	ZeroMatch map[string]int
	// Stale counts load results that arrived after the selection moved on.
	Stale int
	// LoadFailures counts failed loads and instantiations.
	LoadFailures int
}

// entry is the cached outcome for one model id.
type entry struct {
	status Status
	inst   *instance.Instance
	err    error
}

// result is handed from a load goroutine back to the control thread.
type result struct {
	modelID string
	inst    *instance.Instance
	err     error
}
