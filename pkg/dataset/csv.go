package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

const IndexColumn = "index"

// ReadCSV parses a table with a header row. Values are kept as strings. If an
// "index" column exists it becomes the row identity, otherwise the record
// ordinal does.
func ReadCSV(r io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("csv has no header")
	} else if err != nil {
		return nil, nil, fmt.Errorf("error reading csv header: %w", err)
	}

	indexAt := slices.Index(header, IndexColumn)
	columns := make([]string, 0, len(header))
	for i, name := range header {
		if i != indexAt {
			columns = append(columns, name)
		}
	}

	rows := []Row{}
	for n := 0; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("error reading csv record %d: %w", n, err)
		}

		row := Row{Index: n, Fields: make(map[string]any, len(columns))}
		for i, value := range record {
			if i == indexAt {
				if idx, err := strconv.Atoi(value); err != nil {
					return nil, nil, fmt.Errorf("error parsing index of csv record %d: %w", n, err)
				} else {
					row.Index = idx
				}
				continue
			}
			row.Fields[header[i]] = value
		}
		rows = append(rows, row)
	}

	return rows, columns, nil
}

// WriteCSV writes rows with the row identity as the leading "index" column.
func WriteCSV(w io.Writer, columns []string, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(append([]string{IndexColumn}, columns...)); err != nil {
		return err
	}

	record := make([]string, len(columns)+1)
	for _, row := range rows {
		record[0] = strconv.Itoa(row.Index)
		for i, name := range columns {
			if v, ok := row.Fields[name]; ok {
				record[i+1] = fmt.Sprint(v)
			} else {
				record[i+1] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func columnsOf(rows []Row, targets []string) []string {
	columns := append([]string(nil), targets...)
	if len(rows) == 0 {
		return columns
	}
	rest := []string{}
	for name := range rows[0].Fields {
		if !slices.Contains(targets, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(columns, rest...)
}
