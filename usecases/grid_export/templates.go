package grid_export

import "embed"

//go:embed templates
var templatesFS embed.FS
