package smpl

// integral accumulates sum(count × interval length) lazily: flushed
// just before count changes, using the delta since the last flush.
// Applied uniformly to busy-server count and queue length (§9 design
// notes): "integral += current_count * (clock - last_change_time);
// last_change_time = clock; current_count = new_count".
type integral struct {
	value float64
}

// flush advances the integral by count × (now - last), without
// mutating count itself — callers change the underlying count
// immediately after calling flush, using the facility's single
// shared lastChangeTime (§3: "a last_change_time timestamp used to
// accumulate the integrals lazily").
func (ig *integral) flush(count int, elapsed float64) {
	if elapsed < 0 {
		return
	}
	ig.value += float64(count) * elapsed
}
