// Package appfs embeds the migrations and assets shipped with the binaries.
package appfs

import "embed"

//go:embed migrations assets
var FS embed.FS
