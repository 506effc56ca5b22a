// Package server exposes anchor resolution and scene rendering over HTTP.
//
// # Endpoints
//
//   - GET  /healthz: liveness and build information
//   - POST /v1/anchor: resolve one pointer position against a drop target
//   - POST /v1/render?format=svg: build a scene document and render it
//
// Scene bodies are JSON by default; send Content-Type application/toml or
// application/yaml for the other encodings. Every response carries an
// X-Request-ID header, taken from the request when present.
//
// Errors are JSON objects with the coded error's code and message:
//
//	{"error": {"code": "INVALID_SCENE", "message": "decode json scene"}}
package server
