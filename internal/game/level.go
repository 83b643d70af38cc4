// Package game encodes the Sonic Spinball (Genesis) facts the splitter
// depends on: the level progression, the work-RAM locations it polls, and
// the sentinel values the game writes there.
package game

// Level identifies one of the seven stages, in progression order. It is
// derived from the raw area/sub-area bytes, never read directly.
type Level int

const (
	ToxicCaves Level = iota
	Bonus1
	LavaPowerhouse
	Bonus2
	TheMachine
	Bonus3
	TheShowdown
)

// String returns the in-game stage name.
func (l Level) String() string {
	switch l {
	case ToxicCaves:
		return "Toxic Caves"
	case Bonus1:
		return "Bonus 1"
	case LavaPowerhouse:
		return "Lava Powerhouse"
	case Bonus2:
		return "Bonus 2"
	case TheMachine:
		return "The Machine"
	case Bonus3:
		return "Bonus 3"
	case TheShowdown:
		return "The Showdown"
	}
	return "Unknown"
}

// Next returns the following level in the fixed progression, or ok=false
// for TheShowdown, which has no successor (the run ends there).
func (l Level) Next() (Level, bool) {
	if l >= ToxicCaves && l < TheShowdown {
		return l + 1, true
	}
	return l, false
}

// ClassifyLevel maps the raw area/sub-area bytes to a Level. The sub-area
// byte aliases between a main stage and its bonus stage; the global
// run-phase byte disambiguates: PhaseBonusStage means the bonus stage is
// active, anything else means the following main stage. Area values outside
// 1..3, including the 0 the game holds during Toxic Caves, fall through to
// ToxicCaves.
func ClassifyLevel(areaID, subID, phase uint8) Level {
	inBonus := (subID == 1 || subID == 2) && phase == PhaseBonusStage
	switch areaID {
	case 1:
		if inBonus {
			return Bonus1
		}
		return LavaPowerhouse
	case 2:
		if inBonus {
			return Bonus2
		}
		return TheMachine
	case 3:
		if inBonus {
			return Bonus3
		}
		return TheShowdown
	default:
		return ToxicCaves
	}
}
