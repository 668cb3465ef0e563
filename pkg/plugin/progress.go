package plugin

// Progress receives progress reports from a running plugin.
type Progress interface {
	// Progress reports that step out of total steps are done.
	Progress(step, total int)
	// SetComment describes the current phase.
	SetComment(comment string)
}

// NopProgress discards all reports.
type NopProgress struct{}

func (NopProgress) Progress(int, int)  {}
func (NopProgress) SetComment(string) {}
