// Package vocab holds the keyword <-> glyph mapping tables of the valkyrie language.
// Invariants:
//   - Every Vocabulary covers the closed keyword set exactly once.
//   - Glyphs are unique within a vocabulary, NFC-normalised, and never equal a keyword.
//   - Matching is longest-first, so prefix-overlapping glyphs resolve the same way
//     regardless of declaration order.
//   - Double-quoted string literals are never matched.
package vocab
