// Package api exposes the committed OpenAPI document, served by the HTTP
// layer at /docs/openapi.json.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
