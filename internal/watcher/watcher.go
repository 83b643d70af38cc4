// Package watcher provides a two-slot (previous/current) history for a
// single polled value. It is the unit of edge detection: predicates compare
// Old against Current to decide whether a transition just happened.
package watcher

// Pair holds the two most recent observations of a value.
type Pair[T any] struct {
	Old     T
	Current T
}

// Watcher tracks the previous and current observation of one value. The
// zero value is unprimed: it holds no pair until the first successful
// update, and accessors report that explicitly so callers never read
// uninitialized history.
type Watcher[T any] struct {
	pair   Pair[T]
	primed bool
}

// Update records a new observation when ok is true. The current value
// shifts into Old and reading becomes Current; the first observation fills
// both slots. When ok is false the existing pair is left untouched, so a
// transient read failure cannot corrupt history.
func (w *Watcher[T]) Update(reading T, ok bool) {
	if !ok {
		return
	}
	w.UpdateInfallible(reading)
}

// UpdateInfallible unconditionally records a new observation. Used for
// fields the caller has already defaulted, guaranteeing the watcher holds a
// pair after the first call.
func (w *Watcher[T]) UpdateInfallible(reading T) {
	if !w.primed {
		w.pair = Pair[T]{Old: reading, Current: reading}
		w.primed = true
		return
	}
	w.pair.Old = w.pair.Current
	w.pair.Current = reading
}

// Pair returns the observation pair, or ok=false while unprimed.
func (w *Watcher[T]) Pair() (Pair[T], bool) {
	return w.pair, w.primed
}

// Current returns the latest observation, or ok=false while unprimed.
func (w *Watcher[T]) Current() (T, bool) {
	return w.pair.Current, w.primed
}
