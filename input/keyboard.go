package input

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platform2d/parameter"
)

// Key names shared with scenes and behaviors
const (
	KeyUp         = "up"
	KeyDown       = "down"
	KeyLeft       = "left"
	KeyRight      = "right"
	KeySpace      = "space"
	KeyEnter      = "enter"
	KeyEscape     = "escape"
	KeyPageUp     = "page_up"
	KeyPageDown   = "page_down"
	KeyShiftPgUp  = "shift_page_up"
	KeyCtrlPgUp   = "ctrl_page_up"
	KeyGravity    = "g"
	KeyDebugCycle = "d"
	KeyDebugOff   = "ctrl_d"
	KeyReset      = "ctrl_z"
)

// DefaultHold keeps a key pressed between terminal auto-repeat events
const DefaultHold = parameter.KeyHold

// keyToName maps tcell special keys to canonical names
var keyToName = map[tcell.Key]string{
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
	tcell.KeyPgUp:      KeyPageUp,
	tcell.KeyPgDn:      KeyPageDown,
	tcell.KeyTab:       "tab",
	tcell.KeyBackspace: "backspace",
	tcell.KeyCtrlC:     "ctrl_c",
	tcell.KeyCtrlD:     KeyDebugOff,
	tcell.KeyCtrlZ:     KeyReset,
}

// KeyName returns the canonical name of a key event, empty when unmapped
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return KeySpace
		}
		return strings.ToLower(string(r))
	}
	name, ok := keyToName[ev.Key()]
	if !ok {
		return ""
	}
	if ev.Key() == tcell.KeyPgUp {
		switch {
		case ev.Modifiers()&tcell.ModShift != 0:
			return KeyShiftPgUp
		case ev.Modifiers()&tcell.ModCtrl != 0:
			return KeyCtrlPgUp
		}
	}
	return name
}

// Keyboard collects key events from the terminal goroutine and exposes them per frame
// Terminals report no key release: a key stays pressed for hold after its last event
type Keyboard struct {
	mu       sync.Mutex
	hold     time.Duration
	now      func() time.Time
	lastSeen map[string]time.Time
	incoming map[string]bool

	// Frame view, loop goroutine only
	typed   map[string]bool
	pressed map[string]bool
}

// NewKeyboard creates a keyboard, hold <= 0 uses DefaultHold
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{
		hold:     hold,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
		incoming: make(map[string]bool),
		typed:    make(map[string]bool),
		pressed:  make(map[string]bool),
	}
}

// HandleEvent records a tcell event, returns false for events that are not keys
func (k *Keyboard) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	name := KeyName(kev)
	if name == "" {
		return true
	}
	k.Press(name)
	return true
}

// Press records a key by name
func (k *Keyboard) Press(name string) {
	k.mu.Lock()
	k.lastSeen[name] = k.now()
	k.incoming[name] = true
	k.mu.Unlock()
}

// BeginFrame latches the events received since the previous frame
func (k *Keyboard) BeginFrame() {
	k.mu.Lock()
	defer k.mu.Unlock()

	clear(k.typed)
	for name := range k.incoming {
		k.typed[name] = true
	}
	clear(k.incoming)

	now := k.now()
	clear(k.pressed)
	for name, t := range k.lastSeen {
		if now.Sub(t) <= k.hold {
			k.pressed[name] = true
		} else {
			delete(k.lastSeen, name)
		}
	}
}

// Pressed reports whether key is held in the current frame
func (k *Keyboard) Pressed(key string) bool {
	return k.pressed[key]
}

// Typed reports whether an event for key arrived for the current frame
func (k *Keyboard) Typed(key string) bool {
	return k.typed[key]
}
