package check

import "fmt"

// AddDetail appends a context line to the result.
func (r Result) AddDetail(detail string) Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted context line to the result.
func (r Result) AddDetailf(format string, args ...any) Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}
