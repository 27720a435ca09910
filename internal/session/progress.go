package session

// Progress returns how far through the problem the learner is, in [0, 1].
// The three milestones are: function analyzed, first answer submitted,
// problem finished.
func (s *State) Progress() float64 {
	done := 0
	if s.Problem != nil {
		done++
	}
	if s.Attempts > 0 {
		done++
	}
	if s.Finished() {
		done++
	}
	return float64(done) / 3
}
