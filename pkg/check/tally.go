package check

// Tally accumulates result counts for one checker run.
// It is owned by the top-level run and only ever appended to;
// Passed + Failed + Warned always equals the number of checks attempted.
type Tally struct {
	Passed int
	Failed int
	Warned int
}

// Add folds a single result into the tally.
func (t *Tally) Add(r Result) {
	switch r.Status {
	case StatusPass:
		t.Passed++
	case StatusFail:
		t.Failed++
	case StatusWarn:
		t.Warned++
	}
}

// AddAll folds a slice of results into the tally.
func (t *Tally) AddAll(results []Result) {
	for _, r := range results {
		t.Add(r)
	}
}

// Total returns the number of checks attempted.
func (t Tally) Total() int {
	return t.Passed + t.Failed + t.Warned
}

// Ready reports whether deployment may proceed: no check failed.
// Warnings never block readiness.
func (t Tally) Ready() bool {
	return t.Failed == 0
}
