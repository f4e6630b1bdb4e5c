package explorer

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Action is one explorer command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionInsert
	ActionBackspace
	ActionDelete
	ActionLeft
	ActionRight
	ActionHome
	ActionEnd
	ActionClear
	ActionEvaluate
	ActionReroll
	ActionNextMap
	ActionKeywords
	ActionHistoryPrev
	ActionHistoryNext
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionSpawn
	ActionClearSpawns
	ActionQuit
)

// keyToAction maps a tcell key event to an explorer action. Printable runes
// always edit the query, so commands live on control keys.
func keyToAction(ev *tcell.EventKey) Action {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionEvaluate
	case tcell.KeyEscape:
		return ActionQuit
	case tcell.KeyTab:
		return ActionKeywords
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionBackspace
	case tcell.KeyDelete:
		return ActionDelete
	case tcell.KeyHome, tcell.KeyCtrlA:
		return ActionHome
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return ActionEnd
	case tcell.KeyCtrlU:
		return ActionClear
	case tcell.KeyCtrlR:
		return ActionReroll
	case tcell.KeyCtrlN:
		return ActionNextMap
	case tcell.KeyCtrlS:
		return ActionSpawn
	case tcell.KeyCtrlX:
		return ActionClearSpawns
	case tcell.KeyPgUp:
		return ActionPanUp
	case tcell.KeyPgDn:
		return ActionPanDown
	case tcell.KeyUp:
		if ctrl {
			return ActionPanUp
		}
		return ActionHistoryPrev
	case tcell.KeyDown:
		if ctrl {
			return ActionPanDown
		}
		return ActionHistoryNext
	case tcell.KeyLeft:
		if ctrl {
			return ActionPanLeft
		}
		return ActionLeft
	case tcell.KeyRight:
		if ctrl {
			return ActionPanRight
		}
		return ActionRight
	case tcell.KeyRune:
		if ctrl {
			return ctrlRuneAction(ev.Rune())
		}
		return ActionInsert
	}
	return ActionNone
}

// ctrlRuneAction handles terminals that report Ctrl+letter as a rune with
// the Ctrl modifier instead of a control key.
func ctrlRuneAction(r rune) Action {
	switch unicode.ToLower(r) {
	case 'a':
		return ActionHome
	case 'e':
		return ActionEnd
	case 'u':
		return ActionClear
	case 'r':
		return ActionReroll
	case 'n':
		return ActionNextMap
	case 's':
		return ActionSpawn
	case 'x':
		return ActionClearSpawns
	}
	return ActionNone
}
