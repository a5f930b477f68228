// Package export writes analysis results to Parquet files using
// github.com/parquet-go/parquet-go.
package export

import (
	"fmt"
	"os"

	"github.com/panbanda/tally/pkg/analyzer/summary"
	"github.com/parquet-go/parquet-go"
)

// FileRecord is one report's headline metrics. Absent metrics are null.
type FileRecord struct {
	Path       string   `parquet:"path,snappy"`
	Name       string   `parquet:"name,snappy"`
	Kind       string   `parquet:"kind,snappy,dict"`
	Spaces     int32    `parquet:"spaces,snappy"`
	Sloc       *float64 `parquet:"sloc,optional,snappy"`
	Cyclomatic *float64 `parquet:"cyclomatic,optional,snappy"`
	Cognitive  *float64 `parquet:"cognitive,optional,snappy"`
	MI         *float64 `parquet:"mi_visual_studio,optional,snappy"`
	Bugs       *float64 `parquet:"halstead_bugs,optional,snappy"`
}

// SummaryRecord is one field of one summarized category, in long form.
type SummaryRecord struct {
	Category string `parquet:"category,snappy,dict"`
	Key      string `parquet:"key,snappy,dict"`
	Field    string `parquet:"field,snappy,dict"`
	Value    string `parquet:"value,snappy"`
}

// FileRecords converts per-file rows to Parquet records.
func FileRecords(rows []summary.FileRow) []FileRecord {
	out := make([]FileRecord, len(rows))
	for i, r := range rows {
		out[i] = FileRecord{
			Path:       r.Path,
			Name:       r.Name,
			Kind:       r.Kind,
			Spaces:     int32(r.Spaces),
			Sloc:       r.Sloc,
			Cyclomatic: r.Cyclomatic,
			Cognitive:  r.Cognitive,
			MI:         r.MI,
			Bugs:       r.Bugs,
		}
	}
	return out
}

// SummaryRecords flattens presented rows. Absent categories produce no records.
func SummaryRecords(rows []summary.Row) []SummaryRecord {
	var out []SummaryRecord
	for _, r := range rows {
		for _, f := range r.Fields {
			out = append(out, SummaryRecord{
				Category: r.Label,
				Key:      r.Category.Key(),
				Field:    f.Label,
				Value:    f.Value,
			})
		}
	}
	return out
}

// WriteFiles writes per-file rows to a Parquet file at path.
func WriteFiles(rows []summary.FileRow, path string) error {
	return write(FileRecords(rows), path)
}

// WriteSummary writes presented summary rows to a Parquet file at path.
func WriteSummary(rows []summary.Row, path string) error {
	return write(SummaryRecords(rows), path)
}

func write[T any](data []T, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T.
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
