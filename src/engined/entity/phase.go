package entity

// Phase is a named state in the startup state machine. Transitions are
// forward-only except explicit restart and project switch, which re-enter
// PhaseActivatingProject or PhaseStartingLanguageServer from PhaseCompleted.
type Phase int

const (
	// PhaseNotStarted is the initial phase.
	PhaseNotStarted Phase = iota
	// PhaseCheckingForUpdates checks the release manifest for newer engines.
	PhaseCheckingForUpdates
	// PhaseCheckingEngine verifies that the engine binary is present.
	PhaseCheckingEngine
	// PhaseInstallingEngine waits for the installer's completion callback.
	PhaseInstallingEngine
	// PhaseStartingProcess spawns the engine process and connects transport.
	PhaseStartingProcess
	// PhaseActivatingProject waits for the engine to activate the project environment.
	PhaseActivatingProject
	// PhaseStartingLanguageServer launches the external language server.
	PhaseStartingLanguageServer
	// PhaseWaitingForLanguageServerReady waits for the language server to accept requests.
	PhaseWaitingForLanguageServerReady
	// PhaseCompleted means startup finished and triggers are accepted.
	PhaseCompleted
	// PhaseFailed is terminal barring an explicit restart.
	PhaseFailed
)

var _phaseNames = map[Phase]string{
	PhaseNotStarted:                    "NotStarted",
	PhaseCheckingForUpdates:            "CheckingForUpdates",
	PhaseCheckingEngine:                "CheckingEngine",
	PhaseInstallingEngine:              "InstallingEngine",
	PhaseStartingProcess:               "StartingProcess",
	PhaseActivatingProject:             "ActivatingProject",
	PhaseStartingLanguageServer:        "StartingLanguageServer",
	PhaseWaitingForLanguageServerReady: "WaitingForLanguageServerReady",
	PhaseCompleted:                     "Completed",
	PhaseFailed:                        "Failed",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if name, ok := _phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether continue_startup is a no-op in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}
