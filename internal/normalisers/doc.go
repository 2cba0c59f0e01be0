// Package normalisers provides PageExtractor implementations for the corpus
// formats the index builder reads. Each extractor turns one file into
// page-level text with its source filename and page numbers.
//
// Extractors are selected by file extension through a Registry.
package normalisers
