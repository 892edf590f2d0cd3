package domain

// Outcome is the result of downloading a single Target.
// Either LocalPath (success) or Error (failure) is set, never both.
type Outcome struct {
	Target    Target
	LocalPath string
	Bytes     int64
	Error     string
}

func (o Outcome) Failed() bool {
	return o.Error != ""
}

// CountSucceeded returns how many outcomes finished without error.
func CountSucceeded(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}
