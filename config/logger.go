package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"themec/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
	// Format of file log entries, console is human readable text, json is
	// one object per line.
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=console json"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// minLevels maps configured level names to the lowest level logged.
var minLevels = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"normal": zapcore.InfoLevel,
}

// PanicLogName returns name of the file crash output goes to when file
// logging is on.
func (conf *LoggingConfig) PanicLogName() string {
	return filepath.Join(filepath.Dir(conf.FileLogger.Destination), misc.GetAppName()+"-panic.log")
}

// Prepare returns program logger: console output split between stdout and
// stderr plus optional file log. When debug report is requested the file log
// is always written at debug level and becomes part of the report. Fields
// are attached to every entry, the program uses it to mark entries with run
// identifier.
func (conf *LoggingConfig) Prepare(rpt *Report, fields ...zap.Field) (*zap.Logger, error) {
	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}

	fileCore, redirected, err := conf.fileCore(level, mode, rpt)
	if err != nil {
		return nil, err
	}
	stdout, stderr := consoleCores(conf.ConsoleLogger.Level)

	log := zap.New(zapcore.NewTee(stderr, stdout, fileCore), zap.AddCaller()).With(fields...)
	if len(redirected) != 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	return ec
}

// consoleCores returns cores for informational (stdout) and error (stderr)
// messages.
func consoleCores(level string) (stdout, stderr zapcore.Core) {
	lowest, ok := minLevels[level]
	if !ok {
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
	stdout = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	stderr = zapcore.NewCore(newShortErrorEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return stdout, stderr
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// fileCore opens file log and crash output next to it. When destination
// cannot be opened the log goes to temporary file, its name is returned.
func (conf *LoggingConfig) fileCore(level, mode string, rpt *Report) (zapcore.Core, string, error) {
	lowest, ok := minLevels[level]
	if !ok {
		return zapcore.NewNopCore(), "", nil
	}

	ef, err := openLog(conf.PanicLogName(), mode)
	if err != nil {
		ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log")
	}
	if err == nil {
		debug.SetCrashOutput(ef, debug.CrashOptions{})
		rpt.Store("panic.log", ef.Name())
		ef.Close()
	}

	var redirected string
	f, err := openLog(conf.FileLogger.Destination, mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	ec := zap.NewDevelopmentEncoderConfig()
	enc := zapcore.NewConsoleEncoder(ec)
	if conf.FileLogger.Format == "json" {
		ec = zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(lowest)), redirected, nil
}

// shortErrorEncoder prints errors on console as plain messages, without
// verbose details (stack traces of wrapped errors and such), full details
// still go to the file log.
type shortErrorEncoder struct {
	zapcore.Encoder
}

func newShortErrorEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return shortErrorEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (c shortErrorEncoder) Clone() zapcore.Encoder {
	return shortErrorEncoder{c.Encoder.Clone()}
}

func (c shortErrorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	short := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f = zap.String(f.Key, e.Error())
			}
		}
		short = append(short, f)
	}
	return c.Encoder.EncodeEntry(ent, short)
}
