package input

import "github.com/gdamore/tcell/v2"

// Context selects which binding set resolves a key
type Context uint8

const (
	ContextDrive Context = iota
	ContextMenu
)

// Bindings maps keys of one context to intents
type Bindings struct {
	Keys  map[tcell.Key]Intent
	Runes map[rune]Intent
}

// KeyTable maps keys to intents for every context
type KeyTable struct {
	Drive Bindings
	Menu  Bindings
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Drive: Bindings{
			Keys: map[tcell.Key]Intent{
				tcell.KeyUp:     IntentForward,
				tcell.KeyDown:   IntentBackward,
				tcell.KeyLeft:   IntentTiltLeft,
				tcell.KeyRight:  IntentTiltRight,
				tcell.KeyEscape: IntentPause,
				tcell.KeyCtrlC:  IntentQuit,
				tcell.KeyCtrlQ:  IntentQuit,
			},
			Runes: map[rune]Intent{
				'w': IntentForward,
				's': IntentBackward,
				'a': IntentTiltLeft,
				'd': IntentTiltRight,
				'r': IntentReset,
				' ': IntentTurbo,
				'f': IntentTurbo,
				'p': IntentPause,
			},
		},
		Menu: Bindings{
			Keys: map[tcell.Key]Intent{
				tcell.KeyUp:         IntentUp,
				tcell.KeyDown:       IntentDown,
				tcell.KeyEnter:      IntentConfirm,
				tcell.KeyEscape:     IntentBack,
				tcell.KeyBackspace:  IntentBack,
				tcell.KeyBackspace2: IntentBack,
				tcell.KeyCtrlC:      IntentQuit,
				tcell.KeyCtrlQ:      IntentQuit,
			},
			Runes: map[rune]Intent{
				'w': IntentUp,
				's': IntentDown,
				'k': IntentUp,
				'j': IntentDown,
				' ': IntentConfirm,
				'r': IntentConfirm,
				'm': IntentBack,
				'p': IntentConfirm,
				'q': IntentQuit,
			},
		},
	}
}

// Resolve maps a tcell key event to an intent in the given context
// Runes are matched case-insensitively so Shift or Caps Lock do not drop input
func (kt *KeyTable) Resolve(ctx Context, ev *tcell.EventKey) Intent {
	b := kt.bindings(ctx)
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if i, ok := b.Runes[r]; ok {
			return i
		}
		if r >= 'A' && r <= 'Z' {
			if i, ok := b.Runes[r+('a'-'A')]; ok {
				return i
			}
		}
		return IntentNone
	}
	return b.Keys[ev.Key()]
}

func (kt *KeyTable) bindings(ctx Context) *Bindings {
	if ctx == ContextMenu {
		return &kt.Menu
	}
	return &kt.Drive
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Drive: kt.Drive.clone(),
		Menu:  kt.Menu.clone(),
	}
}

func (b Bindings) clone() Bindings {
	c := Bindings{
		Keys:  make(map[tcell.Key]Intent, len(b.Keys)),
		Runes: make(map[rune]Intent, len(b.Runes)),
	}
	for k, v := range b.Keys {
		c.Keys[k] = v
	}
	for k, v := range b.Runes {
		c.Runes[k] = v
	}
	return c
}
