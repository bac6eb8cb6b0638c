package core

// CorrectedLevel folds pull-up and user polarity into a raw electrical
// reading, producing the logical level the debounce machines consume.
// With a pull-up the switch shorts the line to ground, so the logical
// sense flips; an explicit invert flips it again.
func CorrectedLevel(raw, pullup, invert bool) bool {
	level := raw
	if pullup {
		level = !level
	}
	if invert {
		level = !level
	}
	return level
}
