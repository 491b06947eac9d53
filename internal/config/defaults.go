package config

const (
	userConfigRelPath      = "zimage/config.toml"
	projectConfigName      = "zimage.toml"
	defaultColorMode       = ColorNever
	defaultJobs            = 1
	defaultSourceDir       = "src"
	defaultConfigMarker    = "#!ZCONFIG"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	envLogLevel            = "ZIMAGE_LOG_LEVEL"
	envSourceDir           = "ZIMAGE_SOURCE_DIR"
	defaultGlobalConfig    = "global.txt"
	defaultGlobalConfigAlt = "globals.txt"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		WorkflowCheck: WorkflowCheck{
			Color: defaultColorMode,
			Jobs:  defaultJobs,
		},
		Build: Build{
			SourceDir:         defaultSourceDir,
			GlobalConfigFiles: []string{defaultGlobalConfig, defaultGlobalConfigAlt},
			ConfigMarker:      defaultConfigMarker,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
