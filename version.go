package schemacontract

// SchemaVersion is the version of the schema artifact this package produces.
const SchemaVersion = 1

// Generator identity recorded in every produced schema.
const (
	GeneratorName    = "schemacontract-go"
	GeneratorVersion = "0.1.0"
)

// MinReportVersion is the lowest profile report version this package accepts.
const MinReportVersion = 1

// IsSupportedReportVersion reports whether a profile report version is
// accepted by FromProfile.
func IsSupportedReportVersion(v int64) bool {
	return v >= MinReportVersion
}
