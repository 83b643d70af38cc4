package splitter

import "spinsplit/internal/game"

// The three predicates below are pure functions of the bank and settings.
// Each one checks that every watcher it reads is primed and answers false
// otherwise; that is the only guard against acting on uninitialized
// history.

// startTriggered fires when the player confirms a start on the title menu:
// the menu had been idle past the debounce floor, a startable entry was
// highlighted, the game is still in its idle phase, and the input latch
// just fell out of the armed state.
func (s *Splitter) startTriggered() bool {
	if !s.settings.AutoStart {
		return false
	}
	timeout, ok := s.watchers.menuTimeout.Pair()
	if !ok {
		return false
	}
	selection, ok := s.watchers.menuSelection.Pair()
	if !ok {
		return false
	}
	trigger, ok := s.watchers.menuTrigger.Pair()
	if !ok {
		return false
	}
	phase, ok := s.watchers.phase.Pair()
	if !ok {
		return false
	}

	startable := selection.Old == game.MenuSelectionGame1 || selection.Old == game.MenuSelectionGame2
	return startable &&
		phase.Current == game.PhaseIdle &&
		timeout.Old > game.MenuTimeoutFloor &&
		trigger.Old == game.MenuTriggerArmed &&
		trigger.Current < game.MenuTriggerArmed
}

// splitTriggered fires on the single legal forward transition out of the
// departed level, gated by that level's toggle. The Showdown has no
// successor; its split keys on the boss-death phase edge instead.
func (s *Splitter) splitTriggered() bool {
	level, ok := s.watchers.level.Pair()
	if !ok {
		return false
	}
	phase, ok := s.watchers.phase.Pair()
	if !ok {
		return false
	}

	if !s.settings.SegmentEnabled(level.Old) {
		return false
	}
	next, hasNext := level.Old.Next()
	if !hasNext {
		return phase.Old == game.PhaseBossFight && phase.Current == game.PhaseEnding
	}
	return level.Current == next
}

// resetTriggered fires when the phase byte drops from any in-run value back
// to idle, which is how the game reports a quit-out or game over.
func (s *Splitter) resetTriggered() bool {
	if !s.settings.AutoReset {
		return false
	}
	phase, ok := s.watchers.phase.Pair()
	if !ok {
		return false
	}
	return game.InRunPhase(phase.Old) && phase.Current == game.PhaseIdle
}
