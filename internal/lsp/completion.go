package lsp

import (
	"encoding/json"
	"strings"

	"valkyrie/internal/format"
	"valkyrie/internal/vocab"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	return s.sendResponse(msg.ID, completionList{IsIncomplete: false, Items: s.completions})
}

type snippet struct {
	label  string
	detail string
	body   string
}

// snippets are written in keyword form; glyph variants are derived per vocabulary.
var snippets = []snippet{
	{label: "var", detail: "Variable declaration", body: "var ${1:name} = ${2:value};"},
	{label: "multiple var", detail: "Multiple variable declarations", body: "{ var ${1:name1} = ${2:value1}; var ${3:name2} = ${4:value2}; }"},
	{label: "print", detail: "Print statement", body: "print ${1:variable};"},
	{label: "class", detail: "Class declaration", body: "class ${1:ClassName} {\n\t$2\n}"},
	{label: "class inheritance", detail: "Class inheritance", body: "class ${1:ChildClass} < ${2:ParentClass} {\n\t$3\n}"},
	{label: "method", detail: "Method declaration", body: "method(${1:param1}, ${2:param2}) {\n\t$3\n}"},
	{label: "constructor", detail: "Constructor method", body: "init() {\n\tthis.${1:attribute} = ${2:value};\n}"},
	{label: "super constructor", detail: "Constructor with inheritance", body: "class ${1:ChildClass} < ${2:ParentClass} {\n\tinit() {\n\t\tsuper.init();\n\t}\n}"},
	{label: "if", detail: "If statement", body: "if (${1:condition}) {\n\t$2\n}"},
	{label: "for", detail: "For loop", body: "for (var ${1:i} = ${2:0}; ${3:i} < ${4:limit}; ${5:i}++) {\n\t$6\n}"},
	{label: "while", detail: "While loop", body: "while (${1:condition}) {\n\t$2\n}"},
	{label: "fun", detail: "Function definition", body: "fun ${1:functionName}(${2:params}) {\n\t$3\n\treturn ${4:null};\n}"},
	{label: "pipe", detail: "Pipe usage", body: "var ${1:variable} = ${2:value} |> ${3:function};"},
}

// buildCompletions lists keywords, every vocabulary's glyphs and the snippets in
// keyword form followed by their glyph translations.
func buildCompletions(registry *vocab.Registry) []completionItem {
	vocabs := registry.All()
	var items []completionItem

	for _, kw := range vocab.Keywords {
		var docs []string
		for _, v := range vocabs {
			if glyph, ok := v.Glyph(kw); ok {
				docs = append(docs, vocabularyTitle(v.Name())+": "+glyph)
			}
		}
		items = append(items, completionItem{
			Label:            kw,
			Kind:             completionKindKeyword,
			Detail:           "Keyword: " + kw,
			Documentation:    &markupContent{Kind: "markdown", Value: strings.Join(docs, "\n\n")},
			SortText:         "0" + kw,
			InsertText:       kw,
			InsertTextFormat: insertTextFormatPlain,
		})
	}

	for _, v := range vocabs {
		title := vocabularyTitle(v.Name())
		for _, e := range v.Entries() {
			items = append(items, completionItem{
				Label:            e.Glyph,
				Kind:             completionKindKeyword,
				Detail:           title + ": " + e.Glyph,
				Documentation:    &markupContent{Kind: "markdown", Value: "Keyword: " + e.Keyword},
				SortText:         "1" + e.Keyword,
				InsertText:       e.Glyph,
				InsertTextFormat: insertTextFormatPlain,
			})
		}
	}

	for _, sn := range snippets {
		items = append(items, snippetItem(sn.label, sn.detail, sn.body, "2"))
	}
	for _, v := range vocabs {
		title := vocabularyTitle(v.Name())
		opts := format.Options{Direction: format.ToGlyphs, Vocabulary: v}
		for _, sn := range snippets {
			body, err := format.Translate(sn.body, opts)
			if err != nil {
				continue
			}
			items = append(items, snippetItem(sn.label+" ("+v.Name()+")", title+": "+sn.detail, body, "3"))
		}
	}
	return items
}

func snippetItem(label, detail, body, sortPrefix string) completionItem {
	return completionItem{
		Label:            label,
		Kind:             completionKindSnippet,
		Detail:           detail,
		Documentation:    &markupContent{Kind: "markdown", Value: detail},
		SortText:         sortPrefix + label,
		InsertText:       body,
		InsertTextFormat: insertTextFormatSnippet,
	}
}
