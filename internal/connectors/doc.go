// Package connectors provides the document sources the index is built from.
//
// The filesystem connector reads a corpus directory page by page and can
// watch it for changes so the index is rebuilt when documents are edited.
package connectors
