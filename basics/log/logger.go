package log

import (
	"fmt"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogTarget = "/var/log"

// Settings are read from LOGGING_TYPE (text|json), LOGGING_OUTPUT (console|file|both),
// LOGGING_TARGET and LOGGING_LEVEL
type Settings struct {
	Type   string
	Output string
	Target string
	Level  zapcore.Level
}

func SettingsFromEnv() Settings {
	s := Settings{
		Type:   strings.ToLower(os.Getenv("LOGGING_TYPE")),
		Output: strings.ToLower(os.Getenv("LOGGING_OUTPUT")),
		Target: os.Getenv("LOGGING_TARGET"),
		Level:  ParseLevel(os.Getenv("LOGGING_LEVEL")),
	}
	if len(s.Type) == 0 {
		s.Type = "text"
	}
	if len(s.Output) == 0 {
		s.Output = "console"
	}
	if len(s.Target) == 0 {
		s.Target = defaultLogTarget
	}
	return s
}

// Console reports whether log lines reach the terminal
func (s Settings) Console() bool {
	return strings.Compare(s.Output, "file") != 0
}

func (s Settings) encoder() zapcore.Encoder {
	logConfig := zap.NewDevelopmentEncoderConfig()
	if strings.Compare(s.Type, "json") == 0 {
		return zapcore.NewJSONEncoder(logConfig)
	}
	return zapcore.NewConsoleEncoder(logConfig)
}

func (s Settings) writer(service string) (zapcore.WriteSyncer, error) {
	console := zapcore.Lock(os.Stderr)
	if strings.Compare(s.Output, "console") == 0 {
		return console, nil
	}

	logPath := path.Join(s.Target, fmt.Sprintf("rdrelay-%s", service))
	if err := os.MkdirAll(logPath, 0777); err != nil {
		return nil, fmt.Errorf("create logging path: %w", err)
	}

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path.Join(logPath, fmt.Sprintf("%s.log", service)),
		MaxSize:    50, // MB
		MaxBackups: 5,
		Compress:   true,
	})

	if strings.Compare(s.Output, "both") == 0 {
		return zapcore.NewMultiWriteSyncer(console, file), nil
	}
	return file, nil
}

// Build creates the logger of the service with the settings
func (s Settings) Build(service string) (*zap.Logger, error) {
	w, err := s.writer(service)
	if err != nil {
		return nil, err
	}
	return zap.New(zapcore.NewCore(s.encoder(), w, s.Level)), nil
}

// NewLogger creates the process logger from the environment. The second return value
// reports whether the logger writes to the console. When the log file can not be
// prepared, the process exits.
func NewLogger(service string) (*zap.Logger, bool) {
	settings := SettingsFromEnv()

	logger, err := settings.Build(service)
	if err != nil {
		fmt.Printf("ERROR: Unable to create logger: %s\n", err.Error())
		os.Exit(1)
	}
	return logger, settings.Console()
}

// ParseLevel maps LOGGING_LEVEL values to zap levels, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "error":
		return zapcore.ErrorLevel
	case "warn":
		return zapcore.WarnLevel
	case "debug":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
