package daysheet

import (
	"bytes"
	"context"
	"html/template"
)

// Renderer turns a built day sheet into a downloadable document. The
// binary format is the renderer's business; the builder only fixes the
// row data and layout contract.
type Renderer interface {
	Render(ctx context.Context, sheet *DaySheet) ([]byte, string, error)
}

// HTMLRenderer renders the sheet as a print-ready HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("daysheet").Parse(daySheetTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(_ context.Context, sheet *DaySheet) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, sheet); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

const daySheetTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Day Sheet {{.Date.Format "2006-01-02"}}</title>
<style>
body { font-family: sans-serif; font-size: 11px; }
.page { page-break-after: always; }
h2 { border-bottom: 1px solid #333; margin: 12px 0 4px; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 2px 4px; text-align: left; }
.cancelled td { color: #888; text-decoration: line-through; }
.staff { color: #555; font-size: 10px; margin: 0 0 4px; }
</style>
</head>
<body>
<h1>Operating Plan {{.Date.Format "Monday, 02 Jan 2006"}}</h1>
{{range .Pages}}
<div class="page">
{{range .Segments}}
{{if .ShowHeader}}<h2>{{.RoomName}}</h2>
{{if .StaffNames}}<p class="staff">Staff: {{range $i, $n := .StaffNames}}{{if $i}}, {{end}}{{$n}}{{end}}</p>{{end}}
<table>
<tr><th>Admission</th><th>Incision</th><th>Surgeon</th><th>Patient</th><th>Born</th><th>Procedure</th><th>Notes</th></tr>
{{else}}<table>
{{end}}
{{range .Rows}}
<tr{{if .Cancelled}} class="cancelled"{{end}}>
<td>{{.Admission.Format "15:04"}}</td>
<td>{{if .Incision}}{{.Incision.Format "15:04"}}{{end}}</td>
<td>{{.Surgeon}}</td>
<td>{{.PatientName}}{{if .Cancelled}} (cancelled){{end}}</td>
<td>{{.PatientBirth.Format "02.01.2006"}}</td>
<td>{{.Procedure}}</td>
<td>{{.Notes}}</td>
</tr>
{{end}}
</table>
{{end}}
</div>
{{end}}
</body>
</html>`
