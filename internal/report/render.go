package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Writer renders reports into files in the report directory.
type Writer struct {
	dir string
}

// NewWriter creates a report writer. The directory must already exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// renderable is what every report type provides to the generic
// CSV/HTML renderers. JSON and YAML marshal the typed structs directly.
type renderable interface {
	title() string
	headers() []string
	tableRows() [][]string
}

// WriteProject renders a project report and returns the file path.
func (w *Writer) WriteProject(r ProjectReport, f Format) (string, error) {
	name := fmt.Sprintf("project_%s_report.%s", r.Project, f)
	return w.write(name, r, f)
}

// WriteWeek renders a week report and returns the file path.
func (w *Writer) WriteWeek(r WeekReport, f Format) (string, error) {
	name := fmt.Sprintf("week_%d_w%02d_report.%s", r.Year, r.Week, f)
	return w.write(name, r, f)
}

// WriteMonth renders a month report and returns the file path.
func (w *Writer) WriteMonth(r MonthReport, f Format) (string, error) {
	name := fmt.Sprintf("month_%d_%02d_report.%s", r.Year, r.Month, f)
	return w.write(name, r, f)
}

func (w *Writer) write(name string, r renderable, f Format) (string, error) {
	data, err := render(r, f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}

func render(r renderable, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML report: %w", err)
		}
		return data, nil
	case FormatCSV:
		return renderCSV(r)
	case FormatHTML:
		return renderHTML(r)
	}
	return nil, fmt.Errorf("invalid report format %q", f)
}

func renderCSV(r renderable) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(r.headers()); err != nil {
		return nil, fmt.Errorf("encoding CSV report: %w", err)
	}
	for _, row := range r.tableRows() {
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("encoding CSV report: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("encoding CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.4em 0.8em; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

func renderHTML(r renderable) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Title   string
		Headers []string
		Rows    [][]string
	}{r.title(), r.headers(), r.tableRows()})
	if err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}
	return buf.Bytes(), nil
}
