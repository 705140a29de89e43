package importer

// Report is the row-by-row verdict shown to the operator before submission.
type Report struct {
	Header       []string           `json:"header"`
	Results      []ValidationResult `json:"results"`
	TotalRows    int                `json:"totalRows"`
	ValidCount   int                `json:"validCount"`
	InvalidCount int                `json:"invalidCount"`
	WarningCount int                `json:"warningCount"`
}

// ValidateAll validates every parsed row in file order.
func (v *Validator) ValidateAll(parsed *ParsedFile) *Report {
	report := &Report{
		Header:  parsed.Header,
		Results: make([]ValidationResult, 0, len(parsed.Rows)),
	}

	for _, row := range parsed.Rows {
		result := v.Validate(row.Data, row.Number)
		if result.IsValid {
			report.ValidCount++
		} else {
			report.InvalidCount++
		}
		if len(result.Warnings) > 0 {
			report.WarningCount++
		}
		report.Results = append(report.Results, result)
	}
	report.TotalRows = len(report.Results)

	return report
}

// ValidRows returns the rows that passed validation, in file order.
func (r *Report) ValidRows() []ImportRow {
	rows := make([]ImportRow, 0, r.ValidCount)
	for _, result := range r.Results {
		if result.IsValid {
			rows = append(rows, result.Data)
		}
	}
	return rows
}

// HasValidRows reports whether the report can be submitted.
func (r *Report) HasValidRows() bool {
	return r.ValidCount > 0
}
