package uri_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/ghettovoice/urlparser/internal/errorutil"
	"github.com/ghettovoice/urlparser/uri"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustParse(t *testing.T, s string) *uri.URL {
	t.Helper()

	u, err := uri.Parse(s)
	if err != nil {
		t.Fatalf("uri.Parse(%q) error = %v, want nil", s, err)
	}
	return u
}

func TestURL_NilAccessors(t *testing.T) {
	t.Parallel()

	var u *uri.URL
	if _, ok := u.Scheme(); ok {
		t.Error("(*URL)(nil).Scheme() ok = true, want false")
	}
	if _, ok := u.Userinfo(); ok {
		t.Error("(*URL)(nil).Userinfo() ok = true, want false")
	}
	if _, ok := u.Host(); ok {
		t.Error("(*URL)(nil).Host() ok = true, want false")
	}
	if _, ok := u.Port(); ok {
		t.Error("(*URL)(nil).Port() ok = true, want false")
	}
	if got := u.Path(); got != "" {
		t.Errorf("(*URL)(nil).Path() = %q, want \"\"", got)
	}
	if _, ok := u.Query(); ok {
		t.Error("(*URL)(nil).Query() ok = true, want false")
	}
	if _, ok := u.Fragment(); ok {
		t.Error("(*URL)(nil).Fragment() ok = true, want false")
	}
	if u.IsAbsolute() || u.HasAuthority() {
		t.Error("(*URL)(nil) is absolute or has authority, want neither")
	}
	if got := u.HostKind(); got != uri.HostNone {
		t.Errorf("(*URL)(nil).HostKind() = %v, want %v", got, uri.HostNone)
	}
}

func TestURL_Authority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"http://u@h:1/p", "u@h:1", true},
		{"file:///p", "", true},
		{"mailto:a@b", "", false},
		{"/p", "", false},
	}

	for _, c := range cases {
		got, ok := mustParse(t, c.in).Authority()
		if got != c.want || ok != c.wantOk {
			t.Errorf("uri.Parse(%q).Authority() = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
}

func TestURL_PathAndQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"http://h", ""},
		{"http://h/p", "/p"},
		{"http://h/p?", "/p?"},
		{"http://h/p?a=b#f", "/p?a=b"},
		{"/test.php?a=b+c", "/test.php?a=b+c"},
	}

	for _, c := range cases {
		if got := mustParse(t, c.in).PathAndQuery(); got != c.want {
			t.Errorf("uri.Parse(%q).PathAndQuery() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestURL_HostKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want uri.HostKind
	}{
		{"/p", uri.HostNone},
		{"mailto:a@b.c", uri.HostNone},
		{"file:///p", uri.HostEmpty},
		{"http://127.0.0.1:80/", uri.HostIPv4},
		{"http://[::1]/", uri.HostIPv6},
		{"http://[::ffff:10.0.0.1]/", uri.HostIPv6},
		{"http://[v7.host]/", uri.HostIPvFuture},
		{"http://example.com/", uri.HostDomain},
		{"http://my_host.local/", uri.HostDomain},
		{"http://ex%41mple.com/", uri.HostRegName},
		{"http://a..b/", uri.HostRegName},
		{"http://" + strings.Repeat("a", 64) + ".com/", uri.HostRegName},
	}

	for _, c := range cases {
		if got := mustParse(t, c.in).HostKind(); got != c.want {
			t.Errorf("uri.Parse(%q).HostKind() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHostKind_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind uri.HostKind
		want string
		isIP bool
	}{
		{uri.HostNone, "none", false},
		{uri.HostEmpty, "empty", false},
		{uri.HostIPv4, "ipv4", true},
		{uri.HostIPv6, "ipv6", true},
		{uri.HostIPvFuture, "ipvfuture", false},
		{uri.HostDomain, "domain", false},
		{uri.HostRegName, "reg-name", false},
		{uri.HostKind(99), "unknown", false},
	}

	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("HostKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
		if got := c.kind.IsIP(); got != c.isIP {
			t.Errorf("HostKind(%d).IsIP() = %v, want %v", c.kind, got, c.isIP)
		}
	}
}

func TestURL_Zone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"http://[fe80::1%25en0]/", "en0", true},
		{"http://[fe80::1%25%65n0]/", "en0", true},
		{"http://[fe80::1]/", "", false},
		{"http://h/", "", false},
	}

	for _, c := range cases {
		got, ok := mustParse(t, c.in).Zone()
		if got != c.want || ok != c.wantOk {
			t.Errorf("uri.Parse(%q).Zone() = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
}

func TestURL_Equal(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://h/p?")
	cases := []struct {
		name string
		uri  *uri.URL
		val  any
		want bool
	}{
		{"nil ptr to nil", (*uri.URL)(nil), nil, false},
		{"nil ptr to nil ptr", (*uri.URL)(nil), (*uri.URL)(nil), true},
		{"nil ptr to zero ptr", (*uri.URL)(nil), &uri.URL{}, false},
		{"zero ptr to zero val", &uri.URL{}, uri.URL{}, true},
		{"same", u, u, true},
		{"equal", u, mustParse(t, "http://h/p?"), true},
		{"equal val", u, *mustParse(t, "http://h/p?"), true},
		{"query absent", u, mustParse(t, "http://h/p"), false},
		{"scheme case folded", u, mustParse(t, "HTTP://h/p?"), true},
		{"host case kept", u, mustParse(t, "http://H/p?"), false},
		{"type mismatch", u, "http://h/p?", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.Equal(c.val); got != c.want {
				t.Errorf("uri.Equal(val) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestURL_Format(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://u@h:8080/p?#f")
	cases := []struct {
		name string
		fmt  string
		uri  *uri.URL
		want string
	}{
		{"nil", "%v", nil, "<nil>"},
		{
			"v",
			"%v",
			u,
			`{scheme="http" userinfo="u" host="h" port="8080" path="/p" query="" fragment="f"}`,
		},
		{
			"plus v",
			"%+v",
			u,
			`{scheme="http" userinfo="u" host="h" port="8080" path="/p" query="" fragment="f" kind="domain"}`,
		},
		{
			"relative",
			"%s",
			mustParse(t, "/p"),
			`{scheme=<nil> userinfo=<nil> host=<nil> port=<nil> path="/p" query=<nil> fragment=<nil>}`,
		},
		{
			"quoted",
			"%q",
			mustParse(t, "/"),
			`"{scheme=<nil> userinfo=<nil> host=<nil> port=<nil> path=\"/\" query=<nil> fragment=<nil>}"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := fmt.Sprintf(c.fmt, c.uri); got != c.want {
				t.Errorf("fmt.Sprintf(%q, uri) = %s, want %s", c.fmt, got, c.want)
			}
		})
	}
}

func TestURL_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("parsed", "url", mustParse(t, "http://user:secret@h:80/p?q"))

	want := "level=INFO msg=parsed url.scheme=http url.userinfo=REDACTED url.host=h url.port=80 url.path=/p url.query=q\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("log output = %q, want %q\ndiff (-got +want):\n%v", buf.String(), want, diff)
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	_, err := uri.Parse("http://host:99999/")
	if err == nil {
		t.Fatal("uri.Parse() error = nil, want error")
	}

	want := `parse "http://host:99999/": invalid port: port 99999 is out of range [0, 65535] (at offset 12)`
	if got := err.Error(); got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}
	if !errorutil.IsGrammarErr(err) {
		t.Errorf("errorutil.IsGrammarErr(%v) = false, want true", err)
	}
	if kind, ok := uri.ErrorKind(err); !ok || kind != uri.ErrInvalidPort {
		t.Errorf("uri.ErrorKind(%v) = (%q, %v), want (%q, true)", err, kind, ok, uri.ErrInvalidPort)
	}
	if errors.Is(err, uri.ErrInvalidHost) {
		t.Errorf("errors.Is(%v, uri.ErrInvalidHost) = true, want false", err)
	}

	long := "http://h/" + strings.Repeat("a", 200) + " "
	_, err = uri.Parse(long)
	if got := err.Error(); !strings.Contains(got, `aaa..."`) {
		t.Errorf("err.Error() = %q, want truncated input", got)
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		want   uri.Error
		wantOk bool
	}{
		{"nil", nil, "", false},
		{"foreign", errors.New("boom"), "", false},
		{"sentinel", uri.ErrEmptyScheme, uri.ErrEmptyScheme, true},
		{"wrapped", fmt.Errorf("ctx: %w", uri.ErrTooLong), uri.ErrTooLong, true},
	}

	for _, c := range cases {
		got, ok := uri.ErrorKind(c.err)
		if got != c.want || ok != c.wantOk {
			t.Errorf("uri.ErrorKind(%v) = (%q, %v), want (%q, %v)", c.err, got, ok, c.want, c.wantOk)
		}
	}
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"http://[::1]:8080/",
		"http://a@b@c.com/",
		"mailto:user@example.com",
		"http://host:99999/",
		"/p?q#f",
	}
	shared := mustParse(t, "https://user@example.com:443/a?b#c")

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range 100 {
				in := inputs[(i+j)%len(inputs)]
				u1, err1 := uri.Parse(in)
				u2, err2 := uri.Parse(in)
				if (err1 == nil) != (err2 == nil) || (err1 == nil && !u1.Equal(u2)) {
					t.Errorf("uri.Parse(%q) is not deterministic", in)
					return
				}
				if h, _ := shared.Host(); h != "example.com" {
					t.Errorf("shared.Host() = %q, want %q", h, "example.com")
					return
				}
			}
		}()
	}
	wg.Wait()
}
