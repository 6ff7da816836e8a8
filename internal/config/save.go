package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveEditor writes the editor section into the config file. Existing keys
// keep their comments and position, other sections are left untouched.
func SaveEditor(configPath string, e EditorConfig) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode}
	}
	if doc.Kind == yaml.DocumentNode && (len(doc.Content) == 0 || doc.Content[0].Tag == "!!null") {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode}}
	}
	if doc.Kind != yaml.DocumentNode || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	section := mappingValue(doc.Content[0], "editor")
	if section.Kind != yaml.MappingNode {
		// A null or scalar "editor:" is replaced by an empty mapping.
		*section = yaml.Node{Kind: yaml.MappingNode}
	}
	for _, f := range editorFields(e) {
		v := mappingValue(section, f.key)
		// Assign fields individually so comments attached to v survive.
		v.Kind = yaml.ScalarNode
		v.Tag = f.tag
		v.Value = f.value
		v.Style = 0
		v.Content = nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

type editorField struct {
	key   string
	tag   string
	value string
}

func editorFields(e EditorConfig) []editorField {
	num := func(k string, v int) editorField {
		return editorField{key: k, tag: "!!int", value: strconv.Itoa(v)}
	}
	flag := func(k string, v bool) editorField {
		return editorField{key: k, tag: "!!bool", value: strconv.FormatBool(v)}
	}
	return []editorField{
		num("tab_width", e.TabWidth),
		num("auto_save_interval_ms", e.AutoSaveIntervalMs),
		flag("typewriter_enabled", e.TypewriterEnabled),
		num("typewriter_focus_lines", e.TypewriterFocusLines),
		flag("focus_dimming", e.FocusDimming),
		flag("word_wrap", e.WordWrap),
		num("undo_levels", e.UndoLevels),
		num("recenter_delay_ms", e.RecenterDelayMs),
	}
}

// mappingValue returns the value node for key, appending a null entry when
// the key is missing.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
	return v
}

// writeAtomic writes to a temp file in the same directory and renames it over
// path, so a crash never leaves a truncated config.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming config: %w", err)
	}
	return nil
}
