package export

import (
	"time"

	"github.com/gorewood/casewalker/internal/sentence"
)

// Report summarizes one run.
type Report struct {
	Dir       string        `json:"dir"`
	StartedAt time.Time     `json:"started_at"`
	Blocks    int           `json:"blocks"`
	Files     []FileSummary `json:"files"`
	Writes    []WriteResult `json:"writes"`
	// Incomplete lists rows whose template had placeholders without a value.
	Incomplete []IncompleteRow `json:"incomplete,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// FileSummary counts the blocks written to one file.
type FileSummary struct {
	Path   string `json:"path"`
	Blocks int    `json:"blocks"`
}

// IncompleteRow is a data row rendered with sentinel text.
type IncompleteRow struct {
	Title        string   `json:"title"`
	Row          int      `json:"row"`
	Placeholders []string `json:"placeholders"`
}

// NewReport creates an empty report for a run writing into dir.
func NewReport(dir string, startedAt time.Time) *Report {
	return &Report{
		Dir:       dir,
		StartedAt: startedAt,
		Files:     []FileSummary{},
		Writes:    []WriteResult{},
	}
}

// AddWrite records the outcome of one Route call.
func (r *Report) AddWrite(res WriteResult) {
	r.Writes = append(r.Writes, res)
	if res.Err != nil {
		r.Warn(res.Err)
		return
	}

	r.Blocks++
	for i := range r.Files {
		if r.Files[i].Path == res.Path {
			r.Files[i].Blocks++
			return
		}
	}
	r.Files = append(r.Files, FileSummary{Path: res.Path, Blocks: 1})
}

// AddIncomplete records every row that renders with sentinel text.
func (r *Report) AddIncomplete(title, template string, rows [][]string) {
	for i, row := range rows {
		missing := sentence.Unresolved(template, row)
		if len(missing) == 0 {
			continue
		}
		r.Incomplete = append(r.Incomplete, IncompleteRow{Title: title, Row: i, Placeholders: missing})
	}
}

// Warn records a non-fatal failure.
func (r *Report) Warn(err error) {
	r.Warnings = append(r.Warnings, err.Error())
}

// Failed returns the number of blocks that could not be written.
func (r *Report) Failed() int {
	failed := 0
	for _, w := range r.Writes {
		if w.Err != nil {
			failed++
		}
	}
	return failed
}
