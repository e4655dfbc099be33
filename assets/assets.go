// Package assets embeds the text and GUI resource files
package assets

import "embed"

// FS holds text.txt and the default style and control definitions
//
//go:embed text.txt default-styles.yaml default-controls.yaml
var FS embed.FS
