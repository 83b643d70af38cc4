package splitter

import (
	"spinsplit/internal/game"
	"spinsplit/internal/metrics"
	"spinsplit/internal/watcher"
)

// bank is the fixed set of watchers the predicates read. It lives for the
// process lifetime and is never reset; a restarted game simply writes new
// observations over the old history.
type bank struct {
	level         watcher.Watcher[game.Level]
	phase         watcher.Watcher[uint8]
	menuTimeout   watcher.Watcher[uint16]
	menuTrigger   watcher.Watcher[uint8]
	menuSelection watcher.Watcher[uint8]
}

// refresh polls every raw field once and shifts the watchers. Fields the
// predicates always need go through the infallible path with a zero
// substitute on read failure; the menu fields tolerate a missed frame and
// keep their prior pair instead.
func (b *bank) refresh(mem Memory) {
	phase, ok := mem.ReadU8(game.AddrRunPhase)
	if !ok {
		phase = 0
		metrics.ReadFailures.Inc()
	}
	b.phase.UpdateInfallible(phase)

	area, ok := mem.ReadU8(game.AddrAreaID)
	if !ok {
		area = 0
		metrics.ReadFailures.Inc()
	}
	sub, ok := mem.ReadU8(game.AddrSubID)
	if !ok {
		sub = 0
		metrics.ReadFailures.Inc()
	}
	// Classification uses the phase value just written, not the prior one.
	cur, _ := b.phase.Current()
	b.level.UpdateInfallible(game.ClassifyLevel(area, sub, cur))

	timeout, ok := mem.ReadU16(game.AddrMenuTimeout)
	if !ok {
		metrics.ReadFailures.Inc()
	}
	b.menuTimeout.Update(timeout, ok)

	trigger, ok := mem.ReadU8(game.AddrMenuTrigger)
	if !ok {
		metrics.ReadFailures.Inc()
	}
	b.menuTrigger.Update(trigger, ok)

	// The selection byte is sticky: the game scribbles transient values
	// through it during screen transitions, so anything outside the
	// meaningful set is replaced with the last retained observation.
	sel, ok := mem.ReadU8(game.AddrMenuSelection)
	if !ok {
		sel = 0
		metrics.ReadFailures.Inc()
	}
	if !game.StickyMenuSelection(sel) {
		if p, primed := b.menuSelection.Pair(); primed {
			sel = p.Current
		} else {
			sel = 0
		}
	}
	b.menuSelection.UpdateInfallible(sel)
}
