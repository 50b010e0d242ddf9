package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/urlparser/internal/errorutil"
	"github.com/ghettovoice/urlparser/internal/log"
	"github.com/ghettovoice/urlparser/uri"
)

const errSomeFailed errorutil.Error = "some URLs failed to parse"

type options struct {
	format    string
	maxLength int
	logLevel  string
	dev       bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "urlinspect [url...]",
		Short: "Parse URLs and print their components",
		Long: `urlinspect parses every argument as a URL reference and prints its scheme,
userinfo, host, port, path, query and fragment. Absent components are printed as null.
Without arguments URLs are read from standard input, one per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return errtrace.Wrap(errorutil.NewInvalidArgumentError("log level %q", opts.logLevel))
			}
			enc, err := newEncoder(opts.format, out)
			if err != nil {
				return errtrace.Wrap(err)
			}
			r := &runner{
				parser: &uri.Parser{MaxLength: opts.maxLength},
				enc:    enc,
				log:    log.New(errOut, level, opts.dev),
			}
			if len(args) == 0 {
				return errtrace.Wrap(r.runReader(in))
			}
			return errtrace.Wrap(r.run(args))
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().IntVar(&opts.maxLength, "max-length", 0, "Reject URLs longer than this many bytes (0 = no limit)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Use the developer log handler")
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd
}

type runner struct {
	parser *uri.Parser
	enc    encoder
	log    *slog.Logger
}

func (r *runner) run(inputs []string) error {
	var failed int
	for _, in := range inputs {
		if !r.inspect(in) {
			failed++
		}
	}
	if failed > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(errSomeFailed, "%d of %d", failed, len(inputs)))
	}
	return nil
}

func (r *runner) runReader(in io.Reader) error {
	var total, failed int
	sc := bufio.NewScanner(in)
	// Lines of any length reach the parser, --max-length is enforced there.
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	for sc.Scan() {
		total++
		if !r.inspect(sc.Text()) {
			failed++
		}
	}
	if err := sc.Err(); err != nil {
		return errtrace.Wrap(err)
	}
	if failed > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(errSomeFailed, "%d of %d", failed, total))
	}
	return nil
}

func (r *runner) inspect(in string) bool {
	u, err := r.parser.Parse([]byte(in))
	if err != nil {
		var perr *uri.ParseError
		if errors.As(err, &perr) {
			r.log.Error("failed to parse URL", "parse_error", perr)
		} else {
			r.log.Error("failed to parse URL", "input", in, "error", err)
		}
		return false
	}
	r.log.Debug("URL parsed", "url", u)
	if err := r.enc.encode(newReport(in, u)); err != nil {
		r.log.Error("failed to write report", "error", err)
		return false
	}
	return true
}

// report is the printable form of a parsed URL, nil fields are absent components.
type report struct {
	Input    string  `json:"input" yaml:"input"`
	Scheme   *string `json:"scheme" yaml:"scheme"`
	Userinfo *string `json:"userinfo" yaml:"userinfo"`
	Host     *string `json:"host" yaml:"host"`
	HostKind string  `json:"host_kind" yaml:"host_kind"`
	Port     *uint16 `json:"port" yaml:"port"`
	Path     string  `json:"path" yaml:"path"`
	Query    *string `json:"query" yaml:"query"`
	Fragment *string `json:"fragment" yaml:"fragment"`
}

func ptr[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

func newReport(in string, u *uri.URL) report {
	rep := report{
		Input:    in,
		HostKind: u.HostKind().String(),
		Path:     u.Path(),
	}
	scheme, ok := u.Scheme()
	rep.Scheme = ptr(scheme, ok)
	userinfo, ok := u.Userinfo()
	rep.Userinfo = ptr(userinfo, ok)
	host, ok := u.Host()
	rep.Host = ptr(host, ok)
	port, ok := u.Port()
	rep.Port = ptr(port, ok)
	query, ok := u.Query()
	rep.Query = ptr(query, ok)
	fragment, ok := u.Fragment()
	rep.Fragment = ptr(fragment, ok)
	return rep
}

type encoder interface {
	encode(rep report) error
}

func newEncoder(format string, w io.Writer) (encoder, error) {
	switch format {
	case "text":
		return textEncoder{w}, nil
	case "json":
		return jsonEncoder{json.NewEncoder(w)}, nil
	case "yaml":
		return &yamlEncoder{w: w}, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unsupported format %q", format))
	}
}

type textEncoder struct{ w io.Writer }

func (e textEncoder) encode(rep report) error {
	str := func(p *string) string {
		if p == nil {
			return "<nil>"
		}
		return fmt.Sprintf("%q", *p)
	}
	port := "<nil>"
	if rep.Port != nil {
		port = fmt.Sprint(*rep.Port)
	}
	_, err := fmt.Fprintf(e.w,
		"%s\n  scheme:   %s\n  userinfo: %s\n  host:     %s (%s)\n  port:     %s\n  path:     %q\n  query:    %s\n  fragment: %s\n",
		rep.Input, str(rep.Scheme), str(rep.Userinfo), str(rep.Host), rep.HostKind, port,
		rep.Path, str(rep.Query), str(rep.Fragment),
	)
	return errtrace.Wrap(err)
}

type jsonEncoder struct{ enc *json.Encoder }

func (e jsonEncoder) encode(rep report) error { return errtrace.Wrap(e.enc.Encode(rep)) }

type yamlEncoder struct {
	w     io.Writer
	count int
}

func (e *yamlEncoder) encode(rep report) error {
	b, err := yaml.Marshal(rep)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if e.count > 0 {
		if _, err := io.WriteString(e.w, "---\n"); err != nil {
			return errtrace.Wrap(err)
		}
	}
	e.count++
	_, err = e.w.Write(b)
	return errtrace.Wrap(err)
}
