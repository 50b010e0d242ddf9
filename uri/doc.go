// Package uri parses URL references into their generic components.
//
// # Overview
//
// [Parse] validates a raw byte sequence (or string) against the generic URI grammar of
// RFC 3986 and splits it into scheme, userinfo, host, port, path, query and fragment.
// The result is an immutable [URL] value whose accessors distinguish a component that is
// absent from one that is present but empty:
//
//	u, err := uri.Parse("http://example.com/p?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	q, ok := u.Query() // q == "", ok == true
//	f, ok := u.Fragment() // f == "", ok == false
//
// All components are byte-exact slices of the input. Only the scheme is case-folded to
// lower case; nothing is percent-decoded or otherwise normalized.
//
// # Grammar
//
// An input starting with a scheme token followed by ":" is an absolute URL. When "//"
// follows the scheme, the authority runs up to the next "/", "?", "#" or the end of input:
//
//	scheme://userinfo@host:port/path?query#fragment
//
// Without "//" the rest of the input is an opaque path (mailto:, tel:, urn: style URLs),
// and host, port and userinfo are absent. Any input without a scheme is a relative
// reference: it only has a path and optionally a query and a fragment.
//
// Ambiguities are resolved as follows:
//   - the last "@" of the authority separates userinfo from the host;
//   - the last ":" of a non-bracketed host separates the port;
//   - IP literals are enclosed in brackets, which are stripped from [URL.Host].
//
// # Errors
//
// A failed parse returns a [*ParseError] that wraps one of [ErrInvalidEncoding],
// [ErrEmptyScheme], [ErrInvalidHost], [ErrInvalidPort], [ErrInvalidCharacter] or
// [ErrTooLong]. Use [errors.Is] to test for a kind, or [ErrorKind] to get it:
//
//	if _, err := uri.Parse("http://host:99999/"); errors.Is(err, uri.ErrInvalidPort) {
//	    // ...
//	}
//
// # Concurrency
//
// Parsing keeps no state between calls, and a [URL] is never modified after it is
// returned, so both may be used from multiple goroutines without synchronization.
package uri
