package lsp

import (
	"encoding/json"
	"fmt"

	"fortio.org/safecast"

	"valkyrie/internal/driver"
	"valkyrie/internal/format"
	"valkyrie/internal/vocab"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.snapshot(uri)
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	edits, err := formatDocument(s.registry, doc, params.Options, s.currentSettings())
	if err != nil {
		s.logger.Warn("formatting failed", "uri", uri, "err", err)
		return s.sendError(msg.ID, -32603, err.Error())
	}
	s.trace("formatted", "uri", uri, "version", doc.version, "edits", len(edits))
	return s.sendResponse(msg.ID, edits)
}

// formatDocument returns a single edit replacing the whole document, or none
// when the text is already canonical.
func formatDocument(registry *vocab.Registry, doc document, editor formattingOptions, settings Settings) ([]textEdit, error) {
	opts, err := documentOptions(registry, doc, editor, settings)
	if err != nil {
		return nil, err
	}
	out, err := format.String(doc.text, opts)
	if err != nil {
		return nil, err
	}
	if out == doc.text {
		return []textEdit{}, nil
	}
	return []textEdit{{
		Range: lspRange{
			Start: position{},
			End:   positionForOffset(doc.text, len(doc.text)),
		},
		NewText: out,
	}}, nil
}

// documentOptions layers settings over the editor's tab preferences over the
// language profile.
func documentOptions(registry *vocab.Registry, doc document, editor formattingOptions, settings Settings) (format.Options, error) {
	base := format.Options{}
	if editor.TabSize > 0 {
		width, err := safecast.Conv[int](editor.TabSize)
		if err != nil {
			return format.Options{}, fmt.Errorf("tab size: %w", err)
		}
		base.IndentWidth = width
		base.UseTabs = !editor.InsertSpaces
	}
	if settings.IndentWidth > 0 {
		base.IndentWidth = settings.IndentWidth
	}
	if settings.UseTabs != nil {
		base.UseTabs = *settings.UseTabs
	}

	fo := driver.FormatOptions{
		Options:      base,
		Direction:    settings.Direction,
		Vocabularies: registry.All(),
	}
	if settings.Vocabulary != "" {
		v, err := registry.Lookup(settings.Vocabulary)
		if err != nil {
			return format.Options{}, err
		}
		fo.Vocabulary = v
	}
	lang := doc.languageID
	if _, ok := format.ProfileFor(lang); !ok {
		lang = format.LanguageValkyrie
	}
	return driver.LanguageOptions(lang, []byte(doc.text), fo)
}
