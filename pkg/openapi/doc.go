// Package openapi builds scenario pages from OpenAPI operations. The public
// types here stay free of kin-openapi; the parser implementation lives under
// internal/openapi.
package openapi
