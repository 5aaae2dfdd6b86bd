// Package schema carries the backend contract as an embedded OpenAPI 3
// document and derives form models from it.
//
// The same contract backs the HTML form and the terminal prompt flow, so the
// field order, labels, required flags and factor list live in one place:
// pestel.openapi.yaml. Field ordering comes from the `x-order` extension;
// `x-placeholder` and `x-widget` feed renderer hints.
package schema
