package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
)

// Gateway performs one authenticated round trip. out may be nil.
type Gateway interface {
	Do(ctx context.Context, req Request, out any) error
}

// Navigator switches the console to another view.
type Navigator interface {
	Navigate(view string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(view string)

func (f NavigatorFunc) Navigate(view string) { f(view) }

// Request describes one backend call. Path is relative to the base URL.
// Body is JSON encoded unless File is set, in which case a multipart form
// is sent instead.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	File   *File
	// Op selects the fallback message used when the backend gives none.
	Op messages.Key
}

// File is one multipart file part.
type File struct {
	Field   string
	Name    string
	Content []byte
}
