// Package rivalradar provides embedded assets for production builds.
package rivalradar

import "embed"

// Templates are embedded so the production binary is self-contained.
// In dev mode (IsDev=true) they are read from disk for hot reloading.

//go:embed all:web/templates
var TemplateFS embed.FS
