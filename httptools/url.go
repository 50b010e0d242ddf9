// Package httptools exposes the URL parser in the shape expected by HTTP request parsers:
// byte slice components and a single invalid URL failure class.
package httptools

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination=../internal/testutil/parsermock/parser.go -package=parsermock . URLParser

import (
	"log/slog"

	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghettovoice/urlparser/internal/errorutil"
	"github.com/ghettovoice/urlparser/internal/log"
	"github.com/ghettovoice/urlparser/uri"
)

// URLParser parses a raw request target.
// [*uri.Parser] implements it.
type URLParser interface {
	Parse(src []byte) (*uri.URL, error)
}

// Options configure a [URLDecoder].
type Options struct {
	// Parser is used to parse URLs. Defaults to [uri.DefaultParser].
	Parser URLParser
	// Logger receives a debug record for every failed parse. Defaults to a noop logger.
	Logger *slog.Logger
	// Registerer, if set, is used to register the parse counter.
	Registerer prometheus.Registerer
}

func (o *Options) parser() URLParser {
	if o == nil {
		return nil
	}
	return o.Parser
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// URLDecoder turns raw request targets into [URL] values.
// It is safe for concurrent use.
type URLDecoder struct {
	parser  URLParser
	log     *slog.Logger
	metrics *metrics
}

// uriParser returns the configured parser, [uri.DefaultParser] is looked up on every call.
func (d *URLDecoder) uriParser() URLParser {
	if d.parser == nil {
		return uri.DefaultParser
	}
	return d.parser
}

// NewURLDecoder creates a new decoder. opts may be nil.
// Without a configured parser the current [uri.DefaultParser] is used.
func NewURLDecoder(opts *Options) (*URLDecoder, error) {
	d := &URLDecoder{
		parser: opts.parser(),
		log:    opts.logger(),
	}
	if opts != nil && opts.Registerer != nil {
		m, err := newMetrics(opts.Registerer)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d.metrics = m
	}
	return d, nil
}

// ParseURL parses b. Failures match both [ErrInvalidURL] and the [uri.Error] kind.
func (d *URLDecoder) ParseURL(b []byte) (*URL, error) {
	u, err := d.uriParser().Parse(b)
	if err != nil {
		d.log.Debug("failed to parse URL", "input", string(b), "error", err)
		d.metrics.observe(err)
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURL, err))
	}
	d.metrics.observe(nil)
	return &URL{u: u}, nil
}

var defaultDecoder = &URLDecoder{log: log.Noop}

// ParseURL parses b with the default decoder.
func ParseURL(b []byte) (*URL, error) {
	return errtrace.Wrap2(defaultDecoder.ParseURL(b))
}

// URL is a parsed request target.
// Absent components are returned as nil slices, present but empty ones as empty non-nil slices.
type URL struct {
	u *uri.URL
}

func bytesOf(s string, ok bool) []byte {
	if !ok {
		return nil
	}
	return []byte(s)
}

// Schema returns the scheme.
func (u *URL) Schema() []byte { return bytesOf(u.u.Scheme()) }

// Host returns the host.
func (u *URL) Host() []byte { return bytesOf(u.u.Host()) }

// Port returns the port, in case it is set, and a bool flag indicating whether it is set.
func (u *URL) Port() (uint16, bool) { return u.u.Port() }

// Path returns the path.
func (u *URL) Path() string { return u.u.Path() }

// Query returns the query.
func (u *URL) Query() []byte { return bytesOf(u.u.Query()) }

// Fragment always fails with [ErrNotImplemented].
func (u *URL) Fragment() ([]byte, error) { return nil, errtrace.Wrap(ErrNotImplemented) }

// Userinfo always fails with [ErrNotImplemented].
func (u *URL) Userinfo() ([]byte, error) { return nil, errtrace.Wrap(ErrNotImplemented) }

// Core returns the underlying parsed URL with all components.
func (u *URL) Core() *uri.URL { return u.u }
