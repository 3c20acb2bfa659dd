package benchmark

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var reportHeader = []string{"function", "checksum_match", "vectorized", "scalar_duration", "vector_duration"}

// WriteReport persists the rows as a CSV artifact, one row per function in
// processing order, with a header line.
func WriteReport(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Write(reportHeader)
	for _, row := range rows {
		w.Write([]string{
			row.Function,
			strconv.FormatBool(row.ChecksumMatch),
			strconv.FormatBool(row.Vectorized),
			strconv.FormatFloat(row.ScalarDuration, 'g', -1, 64),
			strconv.FormatFloat(row.VectorDuration, 'g', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return f.Close()
}

// ReadReport loads a report artifact back into rows. Reading what
// WriteReport produced yields the identical row slice.
func ReadReport(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(reportHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows []Row
	for _, record := range records[1:] { // skip header
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("reading report %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (Row, error) {
	match, err := strconv.ParseBool(record[1])
	if err != nil {
		return Row{}, err
	}
	vectorized, err := strconv.ParseBool(record[2])
	if err != nil {
		return Row{}, err
	}
	scalar, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return Row{}, err
	}
	vector, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Function:       record[0],
		ChecksumMatch:  match,
		Vectorized:     vectorized,
		ScalarDuration: scalar,
		VectorDuration: vector,
	}, nil
}
