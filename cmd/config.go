package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "gentest"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	excludeFlagName     = "exclude"
	verboseFlagName     = "verbose"
	runParallelFlagName = "parallel"
	runTrialsFlagName   = "trials"
	runSeedFlagName     = "seed"

	runParallelConfigKey     = "run.parallel"
	runTrialsConfigKey       = "run.trials"
	runSeedConfigKey         = "run.seed"
	runMaxSizeConfigKey      = "run.max_size"
	runCheckTimeoutKey       = "run.check_timeout"
	runMaxDiscardRatioKey    = "run.max_discard_ratio"
	excludeConfigKey         = "paths.exclude"
	overridesConfigKey       = "overrides"
	defaultCheckTimeout      = 30 * time.Second
	defaultReportsDir        = ".gentest-reports"
	defaultRunParallel       = 1
	defaultRunTrials         = 100
	defaultRunSeed           = 0
	defaultRunMaxSize        = 30
	defaultRunMaxDiscardRate = 5.0

	envPrefix = "GENTEST"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".gentest.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runTrialsConfigKey, defaultRunTrials)
	viper.SetDefault(runSeedConfigKey, defaultRunSeed)
	viper.SetDefault(runMaxSizeConfigKey, defaultRunMaxSize)
	viper.SetDefault(runCheckTimeoutKey, int64(defaultCheckTimeout.Seconds()))
	viper.SetDefault(runMaxDiscardRatioKey, defaultRunMaxDiscardRate)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(overridesConfigKey, []any{})

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// loadRunConfig reads the run.* keys and validates them.
func loadRunConfig() (domain.RunConfig, error) {
	cfg := domain.RunConfig{
		Trials:          viper.GetInt(runTrialsConfigKey),
		MaxSize:         viper.GetInt(runMaxSizeConfigKey),
		MaxDiscardRatio: viper.GetFloat64(runMaxDiscardRatioKey),
		Parallel:        viper.GetInt(runParallelConfigKey),
		CheckTimeout:    time.Duration(viper.GetInt64(runCheckTimeoutKey)) * time.Second,
		Seed:            viper.GetInt64(runSeedConfigKey),
	}

	if err := validate.Struct(cfg); err != nil {
		return domain.RunConfig{}, fmt.Errorf("invalid run configuration: %w", err)
	}

	return cfg, nil
}

// subjectOverride is one entry of the overrides list. Subjects are named in
// a value rather than a key since viper folds keys to lower case.
type subjectOverride struct {
	Subject    string `mapstructure:"subject" validate:"required"`
	m.Override `mapstructure:",squash"`
}

// loadOverrides reads the per-subject overrides of the config file.
func loadOverrides() (map[string]m.Override, error) {
	var entries []subjectOverride
	if err := viper.UnmarshalKey(overridesConfigKey, &entries); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", overridesConfigKey, err)
	}

	overrides := make(map[string]m.Override, len(entries))

	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("invalid %s[%d]: %w", overridesConfigKey, i, err)
		}

		if _, dup := overrides[entry.Subject]; dup {
			return nil, fmt.Errorf("invalid %s[%d]: %s listed twice", overridesConfigKey, i, entry.Subject)
		}

		overrides[entry.Subject] = entry.Override
	}

	return overrides, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels, e.g. -4 for debug.
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the global slog logger at a rotating log file.
//
// It logs at the configured level, or at Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
