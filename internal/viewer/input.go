package viewer

import "cataloghub/pkg/models"

// Command is a normalized navigation command produced by the input
// adapters and fed to the machine.
type Command int

const (
	CmdNone Command = iota
	CmdPrev
	CmdNext
	CmdClose
)

// Key values follow the DOM KeyboardEvent.key convention so a browser shim
// can pass keys through unchanged.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = " "
	KeyEscape     = "Escape"
)

// KeyAction pairs the command with whether the host must suppress the
// input's default effect (space would otherwise scroll the page).
type KeyAction struct {
	Command        Command
	ConsumeDefault bool
}

func TranslateKey(key string) KeyAction {
	switch key {
	case KeyArrowLeft:
		return KeyAction{Command: CmdPrev}
	case KeyArrowRight:
		return KeyAction{Command: CmdNext}
	case KeySpace:
		return KeyAction{Command: CmdNext, ConsumeDefault: true}
	case KeyEscape:
		return KeyAction{Command: CmdClose}
	}
	return KeyAction{}
}

// DefaultSwipeThreshold is the minimum horizontal travel, in pixels, that
// counts as a swipe; anything smaller is a tap or noise.
const DefaultSwipeThreshold = 50.0

// SwipeTracker classifies touch gestures from their start and end X
// coordinates. A swipe to the left moves forward through the book.
type SwipeTracker struct {
	Threshold float64 // 0 means DefaultSwipeThreshold

	startX float64
	active bool
}

func (t *SwipeTracker) Start(x float64) {
	t.startX = x
	t.active = true
}

func (t *SwipeTracker) End(x float64) Command {
	if !t.active {
		return CmdNone
	}
	t.active = false

	threshold := t.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}

	delta := x - t.startX
	switch {
	case delta <= -threshold:
		return CmdNext
	case delta >= threshold:
		return CmdPrev
	}
	return CmdNone
}

// Apply dispatches a command to the machine and reports whether it changed
// state.
func Apply(m *Machine, cmd Command) bool {
	switch cmd {
	case CmdPrev:
		return m.Prev()
	case CmdNext:
		return m.Next()
	case CmdClose:
		m.Close()
		return true
	}
	return false
}

// ButtonState drives the on-screen prev/next buttons: a button is
// non-interactive exactly when its flag is false.
type ButtonState struct {
	PrevEnabled bool
	NextEnabled bool
}

func Buttons(m *Machine) ButtonState {
	return ButtonState{
		PrevEnabled: m.CanGoPrev(),
		NextEnabled: m.CanGoNext(),
	}
}

// ClickIndicator handles a progress-dot click: a direct jump to that unit.
func ClickIndicator(m *Machine, unit int) bool {
	return m.GoTo(unit)
}

// DeepLink is the link target a company page exposes, opening the company's
// standalone detail view. Emitted by the viewer, resolved elsewhere.
func DeepLink(portalSlug string, p models.FlatPage) string {
	if p.Type != models.PageCompany || p.CompanySlug == "" {
		return ""
	}
	return "/portals/" + portalSlug + "/companies/" + p.CompanySlug
}
