package frame

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// ReadCSV reads a comma-separated file with a header row into a Frame,
// inferring column types from the file content. A missing or unreadable
// file yields a FileAccessError; malformed rows propagate the parser's
// error unchanged.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Println(err)
		}
	}()

	f, err := ReadCSVFrom(file)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return f, nil
}

// ReadCSVFrom reads comma-separated data with a header row from r.
func ReadCSVFrom(r io.Reader) (*Frame, error) {
	reader := csv.NewInferringReader(r,
		csv.WithAllocator(memory.NewGoAllocator()),
		csv.WithHeader(true),
		csv.WithChunk(1<<16),
		csv.WithNullReader(true, ""),
	)
	defer reader.Release()

	var cols []*Column
	for reader.Next() {
		record := reader.Record()
		if cols == nil {
			var err error
			cols, err = columnsForSchema(record.Schema())
			if err != nil {
				return nil, err
			}
		}
		for j, col := range cols {
			if err := appendArrowColumn(col, record.Column(j)); err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	if cols == nil {
		return New()
	}
	return New(cols...)
}

func columnsForSchema(schema *arrow.Schema) ([]*Column, error) {
	cols := make([]*Column, len(schema.Fields()))
	for i, field := range schema.Fields() {
		var kind Kind
		switch field.Type.ID() {
		case arrow.INT64:
			kind = Int
		case arrow.FLOAT64:
			kind = Float
		case arrow.BOOL:
			kind = Bool
		case arrow.STRING:
			kind = String
		default:
			return nil, fmt.Errorf("column %q has unsupported type %s", field.Name, field.Type)
		}
		cols[i] = &Column{Name: field.Name, Kind: kind}
	}
	return cols, nil
}

func appendArrowColumn(col *Column, data arrow.Array) error {
	for i := 0; i < data.Len(); i++ {
		if data.IsNull(i) {
			col.appendNull()
			continue
		}
		col.growValid(true)
		switch arr := data.(type) {
		case *array.Int64:
			col.Ints = append(col.Ints, arr.Value(i))
		case *array.Float64:
			col.Floats = append(col.Floats, arr.Value(i))
		case *array.Boolean:
			col.Bools = append(col.Bools, arr.Value(i))
		case *array.String:
			col.Strings = append(col.Strings, arr.Value(i))
		default:
			return fmt.Errorf("unsupported array type %T", data)
		}
	}
	return nil
}

// WriteCSV writes the frame as a comma-separated file with a header row.
func (f *Frame) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Println(err)
		}
	}()

	record, err := f.arrowRecord(memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer record.Release()

	writer := csv.NewWriter(file, record.Schema(), csv.WithHeader(true))
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return writer.Flush()
}
