package export

import (
	"encoding/csv"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes RFC 4180 records prefixed with a UTF-8 byte order mark so
// spreadsheet tools detect the encoding.
type CSV struct{}

func (CSV) ContentType() string { return "text/csv; charset=UTF-8" }

func (CSV) Extension() string { return "csv" }

func (CSV) Encode(w io.Writer, table Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(table.Headers); err != nil {
		return err
	}

	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
