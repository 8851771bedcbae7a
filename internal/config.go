package internal

// Config carries the resolved command line options down to the source and
// dump layers.
type Config struct {
	Location   string
	Length     uint32
	Endian     string
	Decompress string

	// S3 access, only used for s3:// locations.
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

const (
	EndianAuto   = "auto"
	EndianLittle = "little"
	EndianBig    = "big"
)

const DefaultRegion = "us-east-1"
