// Package model defines the form model shared by the HTML page and the
// terminal prompt flow. Models are derived from the embedded backend contract
// in pkg/schema; renderers only read them.
//
// Field names match the JSON keys the backend expects, so answers collected
// against a model can be written straight into an analysis.FormInput.
package model
