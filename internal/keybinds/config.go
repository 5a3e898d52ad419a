package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated key list, e.g.
// "navigate_up": "up,k". Listed actions replace their default keys.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Table   map[string]string `json:"table,omitempty"`
	Filter  map[string]string `json:"filter,omitempty"`
	Search  map[string]string `json:"search,omitempty"`
	Card    map[string]string `json:"card,omitempty"`
	Panel   map[string]string `json:"panel,omitempty"`
	Form    map[string]string `json:"form,omitempty"`
	Modal   map[string]string `json:"modal,omitempty"`
	Confirm map[string]string `json:"confirm,omitempty"`
	History map[string]string `json:"history,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file.
// Comments and trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextTable:   c.Table,
		ContextFilter:  c.Filter,
		ContextSearch:  c.Search,
		ContextCard:    c.Card,
		ContextPanel:   c.Panel,
		ContextForm:    c.Form,
		ContextModal:   c.Modal,
		ContextConfirm: c.Confirm,
		ContextHistory: c.History,
	}
}

func (c *Config) section(ctx Context) *map[string]string {
	switch ctx {
	case ContextGlobal:
		return &c.Global
	case ContextTable:
		return &c.Table
	case ContextFilter:
		return &c.Filter
	case ContextSearch:
		return &c.Search
	case ContextCard:
		return &c.Card
	case ContextPanel:
		return &c.Panel
	case ContextForm:
		return &c.Form
	case ContextModal:
		return &c.Modal
	case ContextConfirm:
		return &c.Confirm
	case ContextHistory:
		return &c.History
	}
	return nil
}

// SplitKeys splits a comma-separated key list, dropping blanks
func SplitKeys(list string) []string {
	var keys []string
	for _, key := range strings.Split(list, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keyList := range bindings {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context %s: %w", context, err)
			}

			keys := SplitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context %s, action %s: %w", context, action, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	config, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	result := NewValidator().ValidateConfig(config)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds.json:\n%s", result.String())
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings as a config, so users can
// see what can be customized
func ExportDefaults() *Config {
	config := &Config{Version: "1.0"}
	registry := NewDefaultRegistry()

	for _, ctx := range AllContexts {
		grouped := make(map[Action][]string)
		for key, action := range registry.bindings[ctx] {
			grouped[action] = append(grouped[action], key)
		}
		if len(grouped) == 0 {
			continue
		}

		section := make(map[string]string, len(grouped))
		for action, keys := range grouped {
			sort.Strings(keys)
			section[string(action)] = strings.Join(keys, ",")
		}
		*config.section(ctx) = section
	}

	return config
}
