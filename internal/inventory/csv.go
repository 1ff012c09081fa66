package inventory

import (
	"bytes"
	"strings"
)

// CSVHeader is the first line of every export.
const CSVHeader = "Item Name,Expiry Date,Added Date,Quantity,Notes,Status"

// ExportFileName is the download name for an export made on today.
func ExportFileName(today Date) string {
	return "expired-items-" + today.String() + ".csv"
}

// ToCSV renders items as CSV, ordered by expiry date regardless of any view sort.
//
// Notes are always quoted when present (inner quotes doubled); other fields
// are written verbatim. Returns [ErrNothingToExport] for an empty collection.
func ToCSV(items []Item, today Date) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNothingToExport
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	SortItems(sorted, SortByExpiryDate)

	var buf bytes.Buffer

	buf.WriteString(CSVHeader)
	buf.WriteByte('\n')

	for i := range sorted {
		item := &sorted[i]

		buf.WriteString(item.Name)
		buf.WriteByte(',')
		buf.WriteString(item.ExpiryDate.String())
		buf.WriteByte(',')
		buf.WriteString(item.AddedDate.String())
		buf.WriteByte(',')
		buf.WriteString(item.QuantityString())
		buf.WriteByte(',')
		buf.WriteString(quoteNotes(item.Notes))
		buf.WriteByte(',')
		buf.WriteString(Classify(item, today).Label())
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func quoteNotes(notes string) string {
	if notes == "" {
		return ""
	}

	return `"` + strings.ReplaceAll(notes, `"`, `""`) + `"`
}
