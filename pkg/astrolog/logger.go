package astrolog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeLayout = "2006-01-02 15:04:05.000"

var mu sync.Mutex

// ConfigLogger controls where and how the process logs.
type ConfigLogger struct {
	LogLevel    string `env:"LOG_LEVEL,info"`
	LogToFile   bool   `env:"LOG_TO_FILE,false"`
	LogDir      string `env:"LOG_DIR,./logs"`
	LogFileName string `env:"LOG_FILE_NAME,astrombr"`
	Formatted   bool   `env:"LOG_FORMATTED,true"`
	MaxFileSize int    `env:"LOG_MAX_FILE_SIZE,10"` // megabytes
	MaxLogFiles int    `env:"LOG_MAX_FILES,5"`
}

// =============================
// Writers
// =============================

// consoleWriter adapts zerolog.ConsoleWriter to zerolog.LevelWriter.
type consoleWriter struct {
	zerolog.ConsoleWriter
}

// WriteLevel reports len(p) because the console output is a reformatted
// line of a different length; anything else makes zerolog fail with
// "short write".
func (c consoleWriter) WriteLevel(_ zerolog.Level, p []byte) (int, error) {
	_, err := c.ConsoleWriter.Write(p)
	return len(p), err
}

// fileWriter sends entries to a rotating file, either as raw JSON or as one
// formatted line per entry.
type fileWriter struct {
	*lumberjack.Logger
	formatted bool
}

func (f fileWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if !f.formatted {
		return f.Logger.Write(p)
	}
	line, err := formatEntry(level, p)
	if err != nil {
		return f.Logger.Write(p)
	}
	_, err = f.Logger.Write([]byte(line))
	return len(p), err
}

// =============================
// Formatting
// =============================

// formatEntry turns one JSON entry into "time | level | caller | message | k=v".
func formatEntry(level zerolog.Level, p []byte) (string, error) {
	var entry map[string]interface{}
	if err := json.Unmarshal(p, &entry); err != nil {
		return "", err
	}

	ts, _ := entry[zerolog.TimestampFieldName].(string)
	msg, _ := entry[zerolog.MessageFieldName].(string)
	caller, _ := entry[zerolog.CallerFieldName].(string)

	return fmt.Sprintf("%s | %-5s | %-22s | %s | %s\n",
		strings.Replace(ts, "T", " ", 1),
		level.String(),
		caller,
		msg,
		strings.Join(extraFields(entry), " "),
	), nil
}

// shortCaller reduces "dir/sub/file.go" to "file".
func shortCaller(file string) string {
	base := filepath.Base(filepath.ToSlash(file))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, ".go")
}

// extraFields lists the non-standard fields as sorted key=value pairs.
func extraFields(entry map[string]interface{}) []string {
	var extras []string
	for k, v := range entry {
		switch k {
		case zerolog.TimestampFieldName, zerolog.MessageFieldName,
			zerolog.LevelFieldName, zerolog.CallerFieldName:
			continue
		}
		extras = append(extras, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(extras)
	return extras
}

// =============================
// File housekeeping
// =============================

func writeRunBanner(w io.Writer, now time.Time) {
	line := fmt.Sprintf("  run started %s", now.Format("2006-01-02 15:04:05"))
	rule := strings.Repeat("─", len(line)+2)
	_, _ = fmt.Fprintf(w, "\n┌%s┐\n│ %s │\n└%s┘\n\n", rule, line, rule)
}

// pruneLogFiles deletes the oldest *.log files in dir until at most keep
// remain. keep <= 0 disables pruning.
func pruneLogFiles(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type logFile struct {
		name string
		mod  time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{name: e.Name(), mod: info.ModTime()})
	}
	if len(files) <= keep {
		return nil
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mod.Before(files[j].mod) })
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(filepath.Join(dir, f.name)); err != nil {
			log.Err(err).Str("file", f.name).Msg("failed to delete old log file")
		}
	}
	return nil
}

// =============================
// Setup
// =============================

// InitLogger installs the global zerolog logger: a console writer on stderr
// plus, when LogToFile is set, a rotating file under LogDir named by date so
// runs on the same day share a file.
func InitLogger(cfg ConfigLogger) error {
	zerolog.TimeFieldFormat = timeLayout
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s:%d", shortCaller(file), line)
	}

	writers := []io.Writer{newConsoleWriter(os.Stderr)}
	if cfg.LogToFile {
		fw, err := newFileWriter(cfg, time.Now())
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	}

	mu.Lock()
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Logger()
	mu.Unlock()

	UpdateLogLevel(cfg.LogLevel)
	return nil
}

func newConsoleWriter(out io.Writer) consoleWriter {
	return consoleWriter{
		ConsoleWriter: zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeLayout,
			FormatCaller: func(i interface{}) string {
				caller, _ := i.(string)
				return "\033[34m" + caller + "\033[0m"
			},
		},
	}
}

func newFileWriter(cfg ConfigLogger, now time.Time) (*fileWriter, error) {
	dir := cfg.LogDir
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := pruneLogFiles(dir, cfg.MaxLogFiles); err != nil {
		log.Err(err).Msg("failed to prune log files")
	}

	suffix := "_json"
	if cfg.Formatted {
		suffix = ""
	}
	name := fmt.Sprintf("%s_%s%s.log", cfg.LogFileName, now.Format("02-01-2006"), suffix)

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    cfg.MaxFileSize,
		MaxBackups: 3,
		MaxAge:     30,
	}
	writeRunBanner(lj, now)

	return &fileWriter{Logger: lj, formatted: cfg.Formatted}, nil
}

// GetLogger returns the current global logger.
func GetLogger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log.Logger
}

// UpdateLogLevel sets the global level from a name such as "debug" or
// "warn". Unknown names fall back to info.
func UpdateLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
