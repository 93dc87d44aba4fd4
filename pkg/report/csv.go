package report

import (
	"encoding/csv"
	"fmt"

	"github.com/grexie/oversample/pkg/oversample"
	"gonum.org/v1/gonum/stat"
)

func WriteCSVHeader(writer *csv.Writer) error {
	header := []string{
		"Run",
		"Iteration",
		"Std (Before)",
		"Accepted",
		"Std (Accepted)",
		"Row (Accepted)",
		"Tries",
		"Rejected",
		"Std (Rejected Mean)",
		"Std (Rejected StdDev)",
	}

	if err := writer.Write(header); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}

func WriteCSVRow(writer *csv.Writer, runID string, rec oversample.IterationRecord) error {
	rejected := make([]float64, len(rec.Rejected))
	for i, trial := range rec.Rejected {
		rejected[i] = trial.Score
	}

	accepted, score, row := "false", "", ""
	tries := len(rec.Rejected)
	if rec.Accepted != nil {
		accepted = "true"
		score = fmt.Sprintf("%0.6f", rec.Accepted.Score)
		row = fmt.Sprintf("%d", rec.Accepted.Index)
		tries++
	}

	mean, stdDev := "", ""
	if len(rejected) > 0 {
		mean = fmt.Sprintf("%0.6f", stat.Mean(rejected, nil))
	}
	if len(rejected) > 1 {
		stdDev = fmt.Sprintf("%0.6f", stat.StdDev(rejected, nil))
	}

	record := []string{
		runID,
		fmt.Sprintf("%d", rec.Iteration),
		fmt.Sprintf("%0.6f", rec.Before),
		accepted,
		score,
		row,
		fmt.Sprintf("%d", tries),
		fmt.Sprintf("%d", len(rejected)),
		mean,
		stdDev,
	}

	if err := writer.Write(record); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}

// WriteCSV writes one line per recorded iteration of the run.
func WriteCSV(writer *csv.Writer, tr oversample.Trace) error {
	if err := WriteCSVHeader(writer); err != nil {
		return err
	}
	for _, rec := range tr.History {
		if err := WriteCSVRow(writer, tr.RunID, rec); err != nil {
			return err
		}
	}
	return nil
}
