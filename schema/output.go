package schema

// OutputMode selects how results are rendered.
type OutputMode string

// Supported output modes.
const (
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes is the set of accepted output modes.
var ValidOutputModes = map[OutputMode]bool{
	TextOut:    true,
	JSONOut:    true,
	CSVOut:     true,
	ParquetOut: true,
}
