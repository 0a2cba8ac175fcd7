package waygate

import "context"

// Host is the set of navigation primitives the runtime provides. Each call
// resolves when the host reports completion; a non-nil error is the host's
// failure payload, forwarded verbatim by the pipeline.
type Host interface {
	// OpenNew pushes a new page for the built URL.
	OpenNew(ctx context.Context, url string, hint *Hint) error
	// Replace swaps the current page for the built URL.
	Replace(ctx context.Context, url string, hint *Hint) error
	// Reset clears the page stack and opens the built URL.
	Reset(ctx context.Context, url string, hint *Hint) error
	// SwitchTab activates the fixed tab at the raw path. No query string.
	SwitchTab(ctx context.Context, path string) error
	// Back pops steps pages off the stack.
	Back(ctx context.Context, steps int) error
}

// CapabilityReporter is implemented by hosts that cannot perform every
// transition kind. Hosts that do not implement it are assumed to support
// all kinds.
type CapabilityReporter interface {
	Supports(kind Kind) bool
}

// Page is one entry of the host's active page stack.
type Page struct {
	Route  string
	Params map[string]string
}

// PageStack exposes the host's currently active pages, topmost last.
// Used to resolve the origin route and BackTo targets.
type PageStack interface {
	Pages() []Page
}
