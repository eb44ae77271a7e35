package state

// Ordinal identifies one of the narrative's scenes.
type Ordinal int

const (
	OrdinalNone Ordinal = iota
	OrdinalIntro
	OrdinalDescent
	OrdinalResolution
)

// String returns the string representation of the ordinal
func (o Ordinal) String() string {
	switch o {
	case OrdinalNone:
		return "None"
	case OrdinalIntro:
		return "Intro"
	case OrdinalDescent:
		return "Descent"
	case OrdinalResolution:
		return "Resolution"
	default:
		return "Unknown"
	}
}

// Orchestrator holds the narrative's global flags. Every change goes through
// its methods so the transitions between flag values stay explicit.
type Orchestrator struct {
	current         Ordinal
	transitioning   bool
	started         bool
	resourcesLoaded bool
}

// New returns the state before anything has loaded.
func New() *Orchestrator {
	return &Orchestrator{}
}

// CurrentOrdinal returns the committed scene, OrdinalNone before the first
// commit.
func (o *Orchestrator) CurrentOrdinal() Ordinal {
	return o.current
}

// SetCurrent records the committed scene.
func (o *Orchestrator) SetCurrent(ord Ordinal) {
	o.current = ord
}

// Transitioning reports whether a transition is in flight.
func (o *Orchestrator) Transitioning() bool {
	return o.transitioning
}

// BeginTransition sets the transitioning flag. It returns false, leaving the
// state untouched, when a transition is already running.
func (o *Orchestrator) BeginTransition() bool {
	if o.transitioning {
		return false
	}
	o.transitioning = true
	return true
}

// EndTransition clears the transitioning flag.
func (o *Orchestrator) EndTransition() {
	o.transitioning = false
}

// Started reports whether the entry action has been accepted.
func (o *Orchestrator) Started() bool {
	return o.started
}

// MarkStarted sets the started flag. Only the first call returns true.
func (o *Orchestrator) MarkStarted() bool {
	if o.started {
		return false
	}
	o.started = true
	return true
}

// ResourcesLoaded reports whether every asset has resolved.
func (o *Orchestrator) ResourcesLoaded() bool {
	return o.resourcesLoaded
}

// MarkLoaded sets the loaded flag. It never goes back to false.
func (o *Orchestrator) MarkLoaded() {
	o.resourcesLoaded = true
}
