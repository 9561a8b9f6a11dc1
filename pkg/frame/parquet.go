package frame

import (
	"compress/gzip"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// ArrowSchema derives the Arrow schema for this frame. Columns carrying
// nulls are marked nullable.
func (f *Frame) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(f.cols))
	for i, col := range f.cols {
		var typ arrow.DataType
		switch col.Kind {
		case Int:
			typ = arrow.PrimitiveTypes.Int64
		case Float:
			typ = arrow.PrimitiveTypes.Float64
		case Bool:
			typ = arrow.FixedWidthTypes.Boolean
		default:
			typ = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: col.Name, Type: typ, Nullable: col.Valid != nil}
	}
	return arrow.NewSchema(fields, nil)
}

func (f *Frame) arrowRecord(allocator memory.Allocator) (arrow.Record, error) {
	recordBuilder := array.NewRecordBuilder(allocator, f.ArrowSchema())
	defer recordBuilder.Release()

	for j, col := range f.cols {
		builder := recordBuilder.Field(j)
		for i := 0; i < col.Len(); i++ {
			if !col.IsValid(i) {
				builder.AppendNull()
				continue
			}
			switch b := builder.(type) {
			case *array.Int64Builder:
				b.Append(col.Ints[i])
			case *array.Float64Builder:
				b.Append(col.Floats[i])
			case *array.BooleanBuilder:
				b.Append(col.Bools[i])
			case *array.StringBuilder:
				b.Append(col.Strings[i])
			default:
				return nil, fmt.Errorf("unsupported builder type %T", builder)
			}
		}
	}

	return recordBuilder.NewRecord(), nil
}

// WriteParquet writes the frame as a gzip-compressed Parquet file.
func (f *Frame) WriteParquet(path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	// Don't close outFile; parquet handles closing it.
	writer, err := pqarrow.NewFileWriter(
		f.ArrowSchema(),
		outFile,
		parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Gzip),
			parquet.WithCompressionLevel(gzip.BestCompression)),
		pqarrow.DefaultWriterProps(),
	)
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}

	record, err := f.arrowRecord(memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer record.Release()

	if err := writer.Write(record); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return writer.Close()
}
