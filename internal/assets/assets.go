package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_schemas
var Schemas embed.FS

// GetSchema retrieves an embedded schema by path relative to embedded_schemas.
func GetSchema(path string) ([]byte, bool) {
	data, err := fs.ReadFile(Schemas, "embedded_schemas/"+path)
	if err != nil {
		return nil, false
	}
	return data, true
}
