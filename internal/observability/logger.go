package observability

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danmuck/wfirexctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerOptions selects where log lines go besides stdout.
type LoggerOptions struct {
	// LogFile receives JSON lines when set. Parent directories are created.
	LogFile string
}

// InitLogger builds the process logger, installs it as the zerolog global
// logger and returns it with a closer for the log file.
func InitLogger(app string, opts LoggerOptions) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    logging.Current().NoColor,
	}

	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerolog.Logger{}, nil, err
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		out = zerolog.MultiLevelWriter(console, f)
		closer = f
	}

	logger := zerolog.New(out).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
