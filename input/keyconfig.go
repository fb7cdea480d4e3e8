package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Rune aliases for keys that are awkward as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"colon":     ':',
}

// keyNames resolves lowercased tcell key names ("up", "enter", "esc", "ctrl-c")
var keyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEscape
	return m
}()

// Overrides is the sparse key configuration: context name → key name → action name
// The action "none" unbinds a key
type Overrides map[string]map[string]string

// LoadKeyConfig parses YAML keymap data into a sparse override KeyTable
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw Overrides
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return ParseOverrides(raw)
}

// ParseOverrides converts an override map into a sparse KeyTable
// Only contexts present in the map are populated
func ParseOverrides(raw Overrides) (*KeyTable, error) {
	kt := &KeyTable{}

	// Sorted for stable error reporting
	sections := make([]string, 0, len(raw))
	for name := range raw {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	for _, name := range sections {
		var target *Bindings
		switch strings.ToLower(name) {
		case "drive":
			target = &kt.Drive
		case "menu":
			target = &kt.Menu
		default:
			return nil, fmt.Errorf("keymap: unknown section %q", name)
		}
		if err := parseSection(name, raw[name], target); err != nil {
			return nil, err
		}
	}
	return kt, nil
}

func parseSection(section string, data map[string]string, b *Bindings) error {
	b.Keys = make(map[tcell.Key]Intent)
	b.Runes = make(map[rune]Intent)

	for keyStr, action := range data {
		intent, ok := IntentByName(strings.ToLower(strings.TrimSpace(action)))
		if !ok {
			return fmt.Errorf("[%s] key %q: unknown action %q", section, keyStr, action)
		}

		if k, ok := keyNames[strings.ToLower(keyStr)]; ok && len([]rune(keyStr)) > 1 {
			b.Keys[k] = intent
			continue
		}

		r, err := resolveRune(keyStr)
		if err != nil {
			return fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}
		b.Runes[r] = intent
	}
	return nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("invalid key: %q (expected key name, single character or alias)", s)
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to IntentNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	mergeBindings(&result.Drive, override.Drive)
	mergeBindings(&result.Menu, override.Menu)
	return result
}

func mergeBindings(base *Bindings, override Bindings) {
	for k, v := range override.Keys {
		if v == IntentNone {
			delete(base.Keys, k)
		} else {
			base.Keys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v == IntentNone {
			delete(base.Runes, r)
		} else {
			base.Runes[r] = v
		}
	}
}
