// Package api embeds the OpenAPI specification so the server can publish
// it at GET /openapi.yaml.
package api

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3.1 YAML describing the scoring API.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
