package types

import "fmt"

// WarningPrefix marks transcript lines that report non-fatal failures.
const WarningPrefix = "warning: "

// Result carries the terminal success flag and the ordered log transcript of
// one operation. Every operation returns its transcript in full; warnings
// are collected here rather than aborting the run.
type Result struct {
	Success bool     `json:"success"`
	Log     []string `json:"log"`
}

// Infof appends a formatted line to the transcript.
func (r *Result) Infof(format string, args ...any) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

// Warnf appends a formatted warning line to the transcript. Warnings do not
// change the success flag.
func (r *Result) Warnf(format string, args ...any) {
	r.Log = append(r.Log, WarningPrefix+fmt.Sprintf(format, args...))
}
