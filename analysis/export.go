package analysis

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ExportCSV writes each result to <dir>/<name>.csv with a header row. One
// file per analysis; an empty result still produces a file with headers.
func ExportCSV(dir string, results []*Result) error {
	if len(results) == 0 {
		log.Println("No analysis results to export")
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create analysis directory %s: %w", dir, err)
	}

	for _, result := range results {
		outputPath := filepath.Join(dir, result.Name+".csv")
		if err := writeCSV(outputPath, result); err != nil {
			return fmt.Errorf("failed to export %s analysis: %w", result.Name, err)
		}
		log.Printf("Exported %s analysis to %s", result.Name, outputPath)
	}

	log.Printf("All analysis results exported to %s", dir)
	return nil
}

func writeCSV(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(result.Columns); err != nil {
		return err
	}

	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%g", n)
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}
