package export

import (
	"fmt"
	"io"
	"time"
)

const (
	ActiveLabel     = "Activo"
	InactiveLabel   = "Inactivo"
	NoCategoryLabel = "Sin categoría"

	TimeLayout     = "02/01/2006 15:04"
	filenameLayout = "2006-01-02_150405"
)

// Table is a header row plus data rows of already formatted cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

type Encoder interface {
	ContentType() string
	Extension() string
	Encode(w io.Writer, table Table) error
}

// Format selects an Encoder by its URL name.
func Format(name string) (Encoder, bool) {
	switch name {
	case "csv":
		return CSV{}, true
	case "excel":
		return ExcelHTML{}, true
	}
	return nil, false
}

// Filename returns e.g. products_2025-03-01_090000.csv.
func Filename(prefix string, enc Encoder, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(filenameLayout), enc.Extension())
}

func statusLabel(active bool) string {
	if active {
		return ActiveLabel
	}
	return InactiveLabel
}
