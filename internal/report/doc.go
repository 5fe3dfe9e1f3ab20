// Package report renders conversion results for the CLI.
//
// Plain formats (text, json, yaml) are written directly. The markdown format
// is the source for the html format, which goldmark renders with chroma
// highlighting classes, bluemonday sanitizes, and an embedded template wraps
// into a standalone page. The pdf format prints that page with headless
// Chrome through go-rod.
package report
