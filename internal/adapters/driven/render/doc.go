// Package render turns report content and chart datasets into
// downloadable documents: a paginated PDF report and a rasterized
// dashboard snapshot.
package render
