package reference

// Config holds configuration for the reference data source.
type Config struct {
	// Source selects where seed collections are read from (dir, bucket).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the directory holding "<collection>.yaml" files for the dir source.
	Dir string `mapstructure:"dir" default:"./seeds"`
	// Prefix is the object prefix for the bucket source.
	Prefix string `mapstructure:"prefix" default:"seeds/"`
}

const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)
