package session

// Decision is what a protected view does for a given session state.
type Decision int

const (
	Placeholder Decision = iota
	RenderProtected
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Placeholder:
		return "placeholder"
	case RenderProtected:
		return "render"
	case RedirectLogin:
		return "redirect"
	default:
		return "unknown"
	}
}

// Guard maps a session state to the decision for a protected view.
func Guard(s State) Decision {
	switch s {
	case Authenticated:
		return RenderProtected
	case Unauthenticated:
		return RedirectLogin
	default:
		return Placeholder
	}
}
