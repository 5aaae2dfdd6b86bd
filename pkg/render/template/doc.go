// Package template defines the seam page renderers use to execute templates.
// The pongo2-backed implementation lives in the gotemplate subpackage.
package template
