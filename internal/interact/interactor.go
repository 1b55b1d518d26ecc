package interact

import (
	"edgeofdark/internal/engine"

	"github.com/rs/zerolog"
)

// Interactor is the player-side component tying the scanner, highlight,
// pickup and look-at tracking together. Each Update scans once and moves the
// highlight; the interact and drop commands are pushed in by the input layer.
type Interactor struct {
	engine.BaseComponent
	Scanner     *TargetScanner
	Highlight   *HighlightController
	Acquisition *AcquisitionController
	LookAt      LookAtTracker
	Log         zerolog.Logger
}

func NewInteractor(scanner *TargetScanner, highlight *HighlightController, acquisition *AcquisitionController) *Interactor {
	scanner.Holder = acquisition
	acquisition.Candidates = scanner
	return &Interactor{
		Scanner:     scanner,
		Highlight:   highlight,
		Acquisition: acquisition,
		Log:         zerolog.Nop(),
	}
}

func (i *Interactor) Update(deltaTime float32) {
	i.Refresh()
}

// Refresh scans and updates highlight and look-at state.
func (i *Interactor) Refresh() Target {
	t := i.Scanner.Scan()
	i.Highlight.SetCandidate(t.Candidate)
	i.LookAt.Track(t)
	return t
}

// Interact runs the E command: pick up the candidate, and use whatever
// Usable is being looked at.
func (i *Interactor) Interact() bool {
	acted := false
	if i.Acquisition.TryAcquire() {
		// The held object is no longer a candidate.
		i.Highlight.Clear()
		acted = true
	}
	if u, ok := i.LookAt.Current().(Usable); ok {
		if u.Use(i.GetGameObject()) {
			acted = true
		}
	}
	return acted
}

// Drop runs the Q command.
func (i *Interactor) Drop() bool {
	return i.Acquisition.Release()
}

// OnDisable restores every object this carrier touched.
func (i *Interactor) OnDisable() {
	i.Highlight.Clear()
	i.Acquisition.Release()
	i.LookAt.Reset()
}
