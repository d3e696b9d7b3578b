// Package web carries the embedded templates and static assets served by the
// application.
package web

import "embed"

//go:embed templates static
var Files embed.FS
