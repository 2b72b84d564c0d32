// Package docs embeds the help topics shipped with the pathmatch binary.
package docs

import "embed"

//go:embed help
var Help embed.FS
