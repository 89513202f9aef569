package export

import (
	"github.com/gorewood/casewalker/internal/facttype"
)

// Hooks observe a run as it progresses. Nil hooks are skipped.
type Hooks struct {
	// OnWrite is called after every routed block.
	OnWrite func(rec *facttype.Record, res WriteResult)
	// OnWarning is called for every failure outside of Route, such as a
	// file that could not be removed while cleaning.
	OnWarning func(err error)
}

// Convert runs one conversion: clean the router's directory, sort records
// by title, then format and route each record in turn. records is sorted
// in place. File system failures are collected in the report and never
// stop the run.
func Convert(records []*facttype.Record, formatter *Formatter, router *Router, hooks Hooks) *Report {
	report := NewReport(router.Dir(), formatter.now())

	for _, err := range router.Clean() {
		report.Warn(err)
		if hooks.OnWarning != nil {
			hooks.OnWarning(err)
		}
	}

	facttype.SortByTitle(records)

	for _, rec := range records {
		text, model := formatter.Format(rec)
		res := router.Route(text, model)
		report.AddWrite(res)
		report.AddIncomplete(rec.Title, rec.Template, rec.Data)
		if hooks.OnWrite != nil {
			hooks.OnWrite(rec, res)
		}
	}

	return report
}
