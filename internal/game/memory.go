package game

// Work-RAM offsets of the fields the splitter polls. These are offsets into
// 68k work RAM, not absolute bus addresses; the transport adds the WRAM
// base before issuing a read.
const (
	AddrRunPhase      uint32 = 0x3CB7 // u8, global run/menu phase
	AddrAreaID        uint32 = 0x5789 // u8, current area
	AddrSubID         uint32 = 0x3CA9 // u8, sub-area within the area
	AddrMenuTimeout   uint32 = 0xFF6C // u16, frames the title menu has sat idle
	AddrMenuTrigger   uint32 = 0xF2FC // u8, title menu input latch
	AddrMenuSelection uint32 = 0xFF69 // u8, highlighted title menu entry
)

// WRAMBase is the 68k work-RAM base on the Genesis memory map; transports
// default to it when no override is configured.
const WRAMBase uint32 = 0xFF0000

// Run-phase sentinels. The phase byte encodes the game's global state
// machine; only the values below carry meaning for the splitter.
const (
	PhaseIdle       uint8 = 0 // title screen / attract mode
	PhaseBossFight  uint8 = 2 // final boss active
	PhaseEnding     uint8 = 4 // ending sequence, written when the boss dies
	PhaseBonusStage uint8 = 6 // bonus stage active
	PhaseInRunMax   uint8 = 6 // phases 1..PhaseInRunMax are all "in a run"
)

// Title-menu sentinels for the start trigger.
const (
	MenuTriggerArmed   uint8  = 3  // input latch armed, drops below on confirm
	MenuTimeoutFloor   uint16 = 10 // idle frames required before a start counts
	MenuSelectionGame1 uint8  = 1  // "Game Start" entry
	MenuSelectionGame2 uint8  = 15 // alternate entry that also starts a run
)

// StickyMenuSelection reports whether a raw menu-selection byte is one of
// the values worth retaining. The game scribbles transient values through
// this address during screen transitions; anything outside this set is
// noise and the previous observation should be kept instead.
func StickyMenuSelection(v uint8) bool {
	return v == 1 || v == 2 || v == 15
}

// InRunPhase reports whether a phase byte means a run is in progress.
func InRunPhase(v uint8) bool {
	return v > PhaseIdle && v <= PhaseInRunMax
}
