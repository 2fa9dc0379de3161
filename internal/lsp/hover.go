package lsp

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"valkyrie/internal/vocab"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc, ok := s.snapshot(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result := buildHover(s.registry, doc.text, params.Position)
	if result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, result)
}

func buildHover(registry *vocab.Registry, text string, pos position) *hover {
	offset := offsetForPosition(text, pos)
	m, ok := registry.TokenAt(text, offset)
	if !ok {
		return nil
	}
	value := hoverMarkdown(registry.Describe(m.Text()))
	if value == "" {
		return nil
	}
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: value},
		Range: &lspRange{
			Start: positionForOffset(text, m.Start),
			End:   positionForOffset(text, m.End),
		},
	}
}

// hoverMarkdown lists the token's own spelling first, then its counterparts in
// every vocabulary that knows it, then the description.
func hoverMarkdown(descs []vocab.Description) string {
	if len(descs) == 0 {
		return ""
	}
	first := descs[0]
	var parts []string
	if first.Side == vocab.KeywordSide {
		parts = append(parts, "**Keyword**: "+first.Entry.Keyword)
		for _, d := range descs {
			parts = append(parts, "**"+vocabularyTitle(d.Vocabulary)+"**: "+d.Entry.Glyph)
		}
	} else {
		for _, d := range descs {
			parts = append(parts, "**"+vocabularyTitle(d.Vocabulary)+"**: "+d.Entry.Glyph)
		}
		parts = append(parts, "**Keyword**: "+first.Entry.Keyword)
	}
	if first.Entry.Description != "" {
		parts = append(parts, first.Entry.Description)
	}
	return strings.Join(parts, "\n\n")
}

var titler = cases.Title(language.English)

func vocabularyTitle(name string) string {
	return titler.String(name)
}
