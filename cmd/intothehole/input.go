package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/into-the-hole/game"
)

type action int

const (
	actionNone action = iota
	actionLeft
	actionRight
	actionStart
	actionQuit
	actionExit
	actionMute
	actionVolumeUp
	actionVolumeDown
	actionExport
)

// keyHold is how long a rotate key counts as held after its last repeat
const keyHold = 150 * time.Millisecond

// mapKey translates a key press; mode is set for actionStart
func mapKey(ev *tcell.EventKey) (action, game.Mode) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft, 0
	case tcell.KeyRight:
		return actionRight, 0
	case tcell.KeyEscape:
		return actionQuit, 0
	case tcell.KeyCtrlC:
		return actionExit, 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			return actionLeft, 0
		case 'd', 'D', 'l':
			return actionRight, 0
		case '1':
			return actionStart, game.ModeEasy
		case '2':
			return actionStart, game.ModeMedium
		case '3':
			return actionStart, game.ModeHard
		case 'q', 'Q':
			return actionQuit, 0
		case 'm', 'M':
			return actionMute, 0
		case '+', '=':
			return actionVolumeUp, 0
		case '-', '_':
			return actionVolumeDown, 0
		case 'e', 'E':
			return actionExport, 0
		}
	}
	return actionNone, 0
}

// steering emulates held keys from terminal key repeats
type steering struct {
	dir   float64
	until time.Time
}

func (s *steering) press(dir float64, now time.Time) {
	s.dir = dir
	s.until = now.Add(keyHold)
}

func (s *steering) input(now time.Time) game.Input {
	if now.After(s.until) {
		s.dir = 0
	}
	return game.Input{Rotate: s.dir}
}
