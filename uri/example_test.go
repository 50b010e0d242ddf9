package uri_test

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/urlparser/uri"
)

func ExampleParse() {
	u, err := uri.Parse("http://[::1]:8080/index.html?")
	if err != nil {
		panic(err)
	}

	host, _ := u.Host()
	port, _ := u.Port()
	query, hasQuery := u.Query()
	_, hasFragment := u.Fragment()
	fmt.Println(host, port, u.Path())
	fmt.Printf("query=%q present=%v\n", query, hasQuery)
	fmt.Println("fragment present:", hasFragment)
	// Output:
	// ::1 8080 /index.html
	// query="" present=true
	// fragment present: false
}

func ExampleParse_error() {
	_, err := uri.Parse("http://host:99999/")
	fmt.Println(errors.Is(err, uri.ErrInvalidPort))
	// Output:
	// true
}
