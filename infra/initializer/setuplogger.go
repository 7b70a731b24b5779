package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	icon  string
	color lipgloss.AdaptiveColor
}

var levelStyles = map[log.Level]levelStyle{
	log.DebugLevel: {icon: "🐛", color: lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}},
	log.InfoLevel:  {icon: "ℹ️", color: lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.WarnLevel:  {icon: "⚠️", color: lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}},
	log.ErrorLevel: {icon: "❌", color: lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}},
}

// Keys that get highlighted in text output, mapped to the level whose color
// they borrow.
var highlightedKeys = map[string]log.Level{
	"error":   log.ErrorLevel,
	"account": log.InfoLevel,
	"dni":     log.InfoLevel,
	"op":      log.WarnLevel,
	"service": log.DebugLevel,
	"prefix":  log.DebugLevel,
	"caller":  log.DebugLevel,
	"time":    log.DebugLevel,
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

func setupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func newStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, ls := range levelStyles {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
	}
	for key, lvl := range highlightedKeys {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(levelStyles[lvl].color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{}
	}
	formatter, ok := formatters[cfg.Format]
	if !ok {
		formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(newStyles())

	return slog.New(logger)
}
