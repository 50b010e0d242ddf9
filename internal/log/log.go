// Package log provides logging utilities.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/urlparser/uri"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(e *uri.ParseError) slog.Value {
		attrs := []slog.Attr{
			slog.String("message", e.Error()),
			slog.Int("offset", e.Offset),
		}
		if kind, ok := uri.ErrorKind(e); ok {
			attrs = append(attrs, slog.String("kind", string(kind)))
		}
		return slog.GroupValue(attrs...)
	}),
)

// New returns a logger writing to w with the console handler,
// or with the developer handler when dev is true.
func New(w io.Writer, level slog.Leveler, dev bool) *slog.Logger {
	if dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  level == slog.LevelDebug,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a default logger.
var Def = New(os.Stderr, slog.LevelInfo, false)

// Dev is a developer logger.
var Dev = New(os.Stderr, slog.LevelDebug, true)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})
