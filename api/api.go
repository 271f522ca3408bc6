// Package api holds the OpenAPI document of the settlement HTTP API.
package api

import _ "embed"

//go:embed openapi.yaml
var Spec []byte
