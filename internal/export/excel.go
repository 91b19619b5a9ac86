package export

import (
	"bufio"
	"html"
	"io"
)

const headerStyle = "background-color:#4472C4;color:white;font-weight:bold;"

// ExcelHTML writes an HTML table that spreadsheet applications open as a
// worksheet. Every cell is HTML escaped.
type ExcelHTML struct{}

func (ExcelHTML) ContentType() string { return "application/vnd.ms-excel" }

func (ExcelHTML) Extension() string { return "xls" }

func (ExcelHTML) Encode(w io.Writer, table Table) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel">`)
	bw.WriteString(`<head><meta charset="UTF-8"></head>`)
	bw.WriteString(`<body><table border="1">`)

	bw.WriteString(`<tr style="` + headerStyle + `">`)
	for _, h := range table.Headers {
		bw.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	bw.WriteString("</tr>")

	for _, row := range table.Rows {
		bw.WriteString("<tr>")
		for _, cell := range row {
			bw.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		bw.WriteString("</tr>")
	}

	bw.WriteString("</table></body></html>")

	return bw.Flush()
}
