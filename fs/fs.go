// Package appfs exposes the application's embedded files.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
