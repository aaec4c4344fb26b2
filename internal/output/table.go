package output

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats reports as a borderless table.
type TableFormatter struct {
	options *Options
}

// Format renders data as a table followed by a summary line. Values that
// are not Tabular are printed with %v.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	report, ok := data.(Tabular)
	if !ok {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	rows := report.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	if !f.options.NoHeaders {
		headers := append([]string{"NAME", "STATUS"}, report.Columns()...)
		for i, h := range headers {
			headers[i] = colors.Header("%s", h)
		}
		table.SetHeader(headers)
	}
	for _, r := range rows {
		line := append([]string{colors.Name("%s", r.Name), colors.StatusColor(r.Failed)("%s", r.Status)}, r.Cells...)
		table.Append(line)
	}
	table.Render()

	f.printSummary(w, report.Summary(), colors)
	return nil
}

func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func (f *TableFormatter) printSummary(w io.Writer, s Summary, colors *ColorScheme) {
	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = colors.Error("%s", failed)
	}
	fmt.Fprintf(w, "\nSummary: %s, %s, %s\n",
		colors.Success("%d passed", s.Passed),
		failed,
		colors.Duration("elapsed=%s", s.Elapsed.Round(time.Microsecond)),
	)
}
