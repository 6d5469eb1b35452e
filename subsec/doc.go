// Package subsec estimates sub-second capture times for a photo sequence.
//
// EXIF capture times are truncated to whole seconds. When a sequence is shot
// at a known constant interval T, image i was taken at base + i*T for one
// unknown base, and every recorded time m_i bounds that base to the window
// [m_i - i*T, m_i - i*T + 1s). Intersecting all windows narrows base down to
// a fraction of a second; the midpoint of the intersection is used.
//
// The interval is a time.Duration, so offsets are integer nanoseconds and long
// sequences do not accumulate floating point drift.
package subsec
