package protocol

// messages coming in from a viewer.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional viewer name
	Sim  string `json:"sim,omitempty"`  // session code to join; empty creates one
}

const (
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionReset  = "reset"
	ActionStep   = "step" // single tick, only while paused
)

type Control struct {
	Action string `json:"action"`
}

func ValidAction(a string) bool {
	switch a {
	case ActionPause, ActionResume, ActionReset, ActionStep:
		return true
	}
	return false
}
