package tables

const (
	// BuildingID is the identifier column shared by every raw table.
	BuildingID = "building_id"

	// DamageGrade is the ordinal severity label attached to training rows.
	DamageGrade = "damage_grade"

	ParquetExt = ".parquet"
)

// Relative file layout under the raw-data root.
const (
	TrainValuesFile      = "competition/train_values.csv"
	TrainLabelsFile      = "competition/train_labels.csv"
	TestValuesFile       = "competition/test_values.csv"
	SubmissionFormatFile = "competition/submission_format.csv"

	DamageAssessmentFile = "original/csv_building_damage_assessment.csv"
	StructureFile        = "original/csv_building_structure.csv"
	OwnershipFile        = "original/csv_building_ownership_and_use.csv"
)

// Default interim artifact names.
const (
	TrainInterimName = "train_interim" + ParquetExt
	TestInterimName  = "test_interim" + ParquetExt
)
