package engine

import "time"

// charsPerWord is the typing convention for one "word".
const charsPerWord = 5.0

// computeStatistics scores only the overlap of typed and reference; typed
// characters past the end of the reference count for nothing.
func computeStatistics(typed, reference []rune, elapsed time.Duration) Statistics {
	compared := min(len(typed), len(reference))
	correct := 0
	for i := 0; i < compared; i++ {
		if typed[i] == reference[i] {
			correct++
		}
	}
	st := Statistics{
		Elapsed:        elapsed,
		CorrectChars:   correct,
		IncorrectChars: compared - correct,
	}
	ratio := 0.0
	if compared > 0 {
		ratio = float64(correct) / float64(compared)
		st.Accuracy = ratio * 100
	}
	if secs := elapsed.Seconds(); secs > 0 {
		st.RawWPM = float64(compared) * 60 / (charsPerWord * secs)
	}
	// Same as RawWPM * Accuracy / 100, without the round trip through percent.
	st.AdjustedWPM = st.RawWPM * ratio
	return st
}
