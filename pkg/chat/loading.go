package chat

import "time"

// DefaultLoadingInterval is how long each placeholder stays on screen.
const DefaultLoadingInterval = 3 * time.Second

// LoadingMessages are cycled in order while a reply is pending.
var LoadingMessages = []string{
	"Thinking...",
	"Gathering information...",
	"Analyzing your question...",
	"Preparing response...",
	"Processing data...",
	"Searching knowledge base...",
}

// LoadingRotator tracks which placeholder to show while loading. It is
// driven by the UI tick loop and is not safe for concurrent use.
//
// Each Start bumps a generation counter; ticks carry the generation they
// were scheduled under so a tick from a finished turn cannot advance the
// index of the next one.
type LoadingRotator struct {
	loading    bool
	index      int
	generation int
}

// Start enters the loading state at index 0 and returns the new generation.
func (r *LoadingRotator) Start() int {
	r.loading = true
	r.index = 0
	r.generation++
	return r.generation
}

// Stop leaves the loading state and resets the index to 0.
func (r *LoadingRotator) Stop() {
	r.loading = false
	r.index = 0
}

// Advance moves to the next placeholder if generation is current and
// loading is active. It reports whether the tick was applied.
func (r *LoadingRotator) Advance(generation int) bool {
	if !r.loading || generation != r.generation {
		return false
	}
	r.index = (r.index + 1) % len(LoadingMessages)
	return true
}

// Loading reports whether a reply is pending.
func (r *LoadingRotator) Loading() bool {
	return r.loading
}

// Index returns the current placeholder index.
func (r *LoadingRotator) Index() int {
	return r.index
}

// Generation returns the generation of the current loading period.
func (r *LoadingRotator) Generation() int {
	return r.generation
}

// Current returns the placeholder text to show.
func (r *LoadingRotator) Current() string {
	return LoadingMessages[r.index]
}
