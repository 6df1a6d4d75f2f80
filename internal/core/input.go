package core

// Intent is a semantic player request, abstracted from physical keys, clicks and taps.
// Input sources translate raw platform events into intents; the engine never parses
// raw events itself.
type Intent int

const (
	IntentNone        Intent = iota
	IntentUp                 // Up arrow, W, Z, d-pad up
	IntentDown               // Down arrow, S, d-pad down
	IntentLeft               // Left arrow, A, Q, d-pad left
	IntentRight              // Right arrow, D, d-pad right
	IntentPauseToggle        // Space - pause/resume
	IntentPause              // Focus or visibility lost - pause only
	IntentRestart            // R, Enter - start a new run after game over
	IntentQuit               // Ctrl+C, Esc - leave the game (handled by the platform)
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentUp:
		return "Up"
	case IntentDown:
		return "Down"
	case IntentLeft:
		return "Left"
	case IntentRight:
		return "Right"
	case IntentPauseToggle:
		return "PauseToggle"
	case IntentPause:
		return "Pause"
	case IntentRestart:
		return "Restart"
	case IntentQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the intent steers the snake.
func (i Intent) IsDirection() bool {
	return i >= IntentUp && i <= IntentRight
}

// Dispatcher fans intents out to subscribed handlers.
// It is the shared half of every input source: platforms call Dispatch from the
// goroutine that owns the engine, subscribers receive intents synchronously.
type Dispatcher struct {
	next     int
	handlers map[int]func(Intent)
}

// Subscribe registers a handler and returns the func that removes it.
// Calling the returned func more than once is a no-op.
func (d *Dispatcher) Subscribe(handler func(Intent)) func() {
	if d.handlers == nil {
		d.handlers = make(map[int]func(Intent))
	}
	id := d.next
	d.next++
	d.handlers[id] = handler
	return func() {
		delete(d.handlers, id)
	}
}

// Dispatch delivers an intent to every subscriber. IntentNone is dropped.
func (d *Dispatcher) Dispatch(i Intent) {
	if i == IntentNone {
		return
	}
	for _, h := range d.handlers {
		h(i)
	}
}

// Subscribers returns the number of live subscriptions.
func (d *Dispatcher) Subscribers() int {
	return len(d.handlers)
}
