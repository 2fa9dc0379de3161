package lsp

import (
	"encoding/json"
	"strings"
)

// Settings are the client-controlled formatting knobs. Empty fields fall back
// to the document's language profile.
type Settings struct {
	Vocabulary  string
	Direction   string
	IndentWidth int
	UseTabs     *bool
	Trace       bool
}

type lspSettings struct {
	Valkyrie valkyrieSettings `json:"valkyrie"`
}

type valkyrieSettings struct {
	Format formatSettings `json:"format"`
	Trace  *bool          `json:"trace,omitempty"`
}

type formatSettings struct {
	Vocabulary  *string `json:"vocabulary,omitempty"`
	Direction   *string `json:"direction,omitempty"`
	IndentWidth *int    `json:"indentWidth,omitempty"`
	UseTabs     *bool   `json:"useTabs,omitempty"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Warn("ignoring malformed settings", "err", err)
		return
	}
	f := settings.Valkyrie.Format
	s.mu.Lock()
	if f.Vocabulary != nil {
		s.settings.Vocabulary = strings.TrimSpace(*f.Vocabulary)
	}
	if f.Direction != nil {
		s.settings.Direction = strings.TrimSpace(*f.Direction)
	}
	if f.IndentWidth != nil && *f.IndentWidth >= 0 {
		s.settings.IndentWidth = *f.IndentWidth
	}
	if f.UseTabs != nil {
		v := *f.UseTabs
		s.settings.UseTabs = &v
	}
	if settings.Valkyrie.Trace != nil {
		s.settings.Trace = *settings.Valkyrie.Trace
	}
	current := s.settings
	s.mu.Unlock()
	s.logger.Info("settings updated",
		"vocabulary", current.Vocabulary,
		"direction", current.Direction,
		"indentWidth", current.IndentWidth,
		"trace", current.Trace)
}

func (s *Server) currentSettings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}
