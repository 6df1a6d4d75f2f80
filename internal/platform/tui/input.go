package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TeaInput is the engine's input source for Bubble Tea programs. It translates
// key presses, d-pad clicks and focus loss into intents; the model decides when
// to dispatch them.
type TeaInput struct {
	core.Dispatcher
	keys KeyMap
	pad  DPad
}

// NewTeaInput creates an input source using the given bindings and d-pad.
func NewTeaInput(keys KeyMap, pad DPad) *TeaInput {
	return &TeaInput{keys: keys, pad: pad}
}

// KeyIntent maps a key message.
func (in *TeaInput) KeyIntent(msg tea.KeyMsg) core.Intent {
	return in.keys.Intent(msg)
}

// MouseIntent maps a left click on a d-pad button. Everything else is ignored.
func (in *TeaInput) MouseIntent(msg tea.MouseMsg) core.Intent {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.IntentNone
	}
	return in.pad.Hit(msg.X, msg.Y)
}

// padButtonWidth is the rendered width of one d-pad button.
const padButtonWidth = 5

// PadWidth is the rendered width of the whole d-pad.
const PadWidth = 3*padButtonWidth + 2

type padButton struct {
	intent core.Intent
	label  string
	rect   core.Rect
}

// DPad is an on-screen direction pad for mouse and touch terminals.
type DPad struct {
	X, Y    int // Top-left corner in terminal cells
	buttons []padButton
}

// NewDPad lays out the four buttons in a cross with its top-left at (x, y).
func NewDPad(x, y int) DPad {
	mid := x + (PadWidth-padButtonWidth)/2
	return DPad{
		X: x,
		Y: y,
		buttons: []padButton{
			{core.IntentUp, "[ ▲ ]", core.NewRect(mid, y, padButtonWidth, 1)},
			{core.IntentLeft, "[ ◀ ]", core.NewRect(x, y+1, padButtonWidth, 1)},
			{core.IntentRight, "[ ▶ ]", core.NewRect(x+PadWidth-padButtonWidth, y+1, padButtonWidth, 1)},
			{core.IntentDown, "[ ▼ ]", core.NewRect(mid, y+2, padButtonWidth, 1)},
		},
	}
}

// Hit returns the intent of the button under (x, y), or IntentNone.
func (p DPad) Hit(x, y int) core.Intent {
	for _, b := range p.buttons {
		if b.rect.Contains(x, y) {
			return b.intent
		}
	}
	return core.IntentNone
}

// View draws the pad as three lines, relative to its own origin.
func (p DPad) View() string {
	screen := core.NewScreen(PadWidth, 3)
	for _, b := range p.buttons {
		screen.DrawText(b.rect.X-p.X, b.rect.Y-p.Y, b.label, core.ColorGreen)
	}
	return strings.TrimRight(RenderScreen(screen), " ")
}
