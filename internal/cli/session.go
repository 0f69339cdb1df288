package cli

import (
	"io"
	"log/slog"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
)

// session is the per-invocation state shared by the pipeline commands.
type session struct {
	opts    *RootOptions
	out     *OutputFormatter
	logger  *slog.Logger
	metrics *observability.Collector
}

func newSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, out.Fail(err)
	}
	logger := NewLogger(out.GetErrWriter(), opts)
	slog.SetDefault(logger)
	return &session{opts: opts, out: out, logger: logger, metrics: metrics}, nil
}

// NewLogger builds the CLI logger: a charm logger on w used as the slog
// handler. Only warnings and errors are shown unless verbose is set; JSON
// output switches the logger to JSON lines.
func NewLogger(w io.Writer, opts *RootOptions) *slog.Logger {
	level := charmlog.WarnLevel
	if opts.Verbose {
		level = charmlog.DebugLevel
	}
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "pyrops",
	})
	if opts.Format == "json" {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return slog.New(l)
}

func (s *session) loadSettings() (*settings.Settings, error) {
	st, err := settings.Load(s.opts.Settings)
	if err != nil {
		return nil, err
	}
	s.out.VerboseLog("Settings: input %s, output %s", st.InputDir, st.OutputDir)
	return st, nil
}

func (s *session) pipeline(st *settings.Settings, extra ...pipeline.Option) *pipeline.Pipeline {
	opts := append([]pipeline.Option{
		pipeline.WithLogger(s.logger),
		pipeline.WithMetrics(s.metrics),
	}, extra...)
	return pipeline.New(st, opts...)
}

// openArchive opens the run archive named in the settings. It returns nil
// when archiving is disabled.
func (s *session) openArchive(st *settings.Settings) (*store.Store, error) {
	if st.ArchivePath == "" {
		return nil, nil
	}
	s.out.VerboseLog("Archive: %s", st.ArchivePath)
	return store.Open(st.ArchivePath)
}

// finish writes the metrics textfile, then reports err if there is one.
// Metrics are written for failed runs too.
func (s *session) finish(err error) error {
	if s.opts.MetricsFile != "" {
		if werr := s.metrics.WriteTextfile(s.opts.MetricsFile); werr != nil {
			s.logger.Warn("metrics not written", "path", s.opts.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return s.out.Fail(err)
	}
	return nil
}
