package selector

import (
	"github.com/charmbracelet/log"
)

// Outcome records the result of one deletion attempt.
type Outcome struct {
	Path  string
	Freed int64
	Err   error
}

// Result is the tally of an executed deletion batch.
type Result struct {
	Outcomes []Outcome
	Freed    int64
	Deleted  int
	Errors   int
}

// Execute deletes the confirmed candidates in their original order through
// remove, which returns the bytes reclaimed for a path. One failure is
// recorded and the remaining paths are still attempted.
func Execute(items []Candidate, remove func(path string) (int64, error)) Result {
	var res Result
	for _, it := range items {
		freed, err := remove(it.Path)
		out := Outcome{Path: it.Path, Freed: freed, Err: err}
		res.Outcomes = append(res.Outcomes, out)
		if err != nil {
			log.Warn("delete failed", "path", it.Path, "err", err)
			res.Errors++
			continue
		}
		res.Freed += freed
		res.Deleted++
	}
	return res
}
