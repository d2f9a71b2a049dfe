package config

const (
	defaultDataDir        = "~/.local/share/lightbox"
	defaultStagingDir     = "~/.local/share/lightbox/staging"
	defaultLibraryDir     = "~/library"
	defaultLogDir         = "~/.local/share/lightbox/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultMaxFileSizeMB  = 30
	defaultMaxWidth       = 1920
	defaultMaxHeight      = 1920
	defaultJPEGQuality    = 85
	defaultMinFreeSpaceMB = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			StagingDir: defaultStagingDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Images: Images{
			MaxFileSizeMB: defaultMaxFileSizeMB,
			MaxWidth:      defaultMaxWidth,
			MaxHeight:     defaultMaxHeight,
			JPEGQuality:   defaultJPEGQuality,
		},
		Upload: Upload{
			OverwriteExisting: false,
			MinFreeSpaceMB:    defaultMinFreeSpaceMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
