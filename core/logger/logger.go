package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
	ColorWhite  = "\033[37m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// sink is a destination for log lines. Colour is decided once, when the
// sink is registered.
type sink struct {
	w     io.Writer
	color bool
}

type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	sinks   map[LogLevel][]sink
	now     func() time.Time
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		sinks: make(map[LogLevel][]sink),
		now:   time.Now,
	}
	SetWriterForAll(os.Stdout)
}

func newSink(w io.Writer) sink {
	return sink{w: w, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func SetWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = []sink{newSink(writer)}
}

func SetWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= ERROR; level++ {
		SetWriter(level, writer)
	}
}

func AddWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = append(globalLogger.sinks[level], newSink(writer))
}

func AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= ERROR; level++ {
		AddWriter(level, writer)
	}
}

// RemoveWriter detaches writer from every level it was added to.
func RemoveWriter(writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	for level, sinks := range globalLogger.sinks {
		kept := make([]sink, 0, len(sinks))
		for _, s := range sinks {
			if s.w != writer {
				kept = append(kept, s)
			}
		}
		globalLogger.sinks[level] = kept
	}
}

type logFile struct {
	*os.File
}

// Close detaches the file from the logger before closing it.
func (lf logFile) Close() error {
	RemoveWriter(lf.File)
	return lf.File.Close()
}

// AddLogFile appends every level to the file at path. Closing the returned
// closer stops logging to the file and releases it.
func AddLogFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	AddWriterForAll(f)
	return logFile{File: f}, nil
}

func SetErrorWriter() {
	SetWriter(ERROR, os.Stderr)
}

func (cl *ColoredLogger) getColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	default:
		return ColorWhite
	}
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string, color bool) string {
	timestamp := cl.now().Format("06-01-02 15:04:05")

	if !color {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}

	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s%s",
		ColorGray, timestamp, ColorReset,
		cl.getColor(level), level.String(), ColorReset,
		message, ColorReset,
	)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}
	sinks := cl.sinks[level]
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	for _, s := range sinks {
		fmt.Fprintln(s.w, cl.formatMessage(level, message, s.color))
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}
