// Package format is the line-oriented formatter for valkyrie source in either notation.
//
// Purpose: re-indent, re-punctuate and optionally transliterate a whole document
// between keyword and glyph spellings.
// Does not: parse, validate, or reject input. Every document formats to something.
// Dependencies: internal/vocab.
package format
