package tables

import "github.com/apache/arrow/go/v18/arrow"

const comment = "comment"

// Submission describes the competition submission table. The submission
// template read from SubmissionFormatFile must carry exactly these columns.
var Submission = arrow.NewSchema([]arrow.Field{
	{Name: BuildingID,
		Type: arrow.PrimitiveTypes.Int64,
		Metadata: NewMetadataBuilder().Add(
			comment, "A unique identifier for the building in this dataset",
		).Build()},
	{Name: DamageGrade,
		Type: arrow.PrimitiveTypes.Int64,
		Metadata: NewMetadataBuilder().Add(
			comment, "The predicted damage severity, from 1 (low) to 3 (near-total destruction)",
		).Build()},
}, NewMetadataBuilder().Add(
	comment, "Predictions in the competition submission format",
).BuildReference())

// MetadataBuilder is a convenience type to aid readability of code that
// specifies metadata for Arrow types.
type MetadataBuilder struct {
	keys   []string
	values []string
}

func NewMetadataBuilder() *MetadataBuilder {
	return &MetadataBuilder{}
}

func (b *MetadataBuilder) Add(key, value string) *MetadataBuilder {
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
	return b
}

// Build constructs and returns the arrow.Metadata.
func (b *MetadataBuilder) Build() arrow.Metadata {
	return arrow.NewMetadata(b.keys, b.values)
}

// BuildReference constructs and returns the arrow.Metadata result as a
// reference.
func (b *MetadataBuilder) BuildReference() *arrow.Metadata {
	result := b.Build()
	return &result
}
