package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"f3os/internal/errors"
	"f3os/internal/log"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Recognized top-level setting names
const (
	KeyFullscreen  = "fullscreen"
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyFontSize    = "fontsize"
	KeyFontFamily  = "fontfamily"
	KeyBgColor     = "bgcolor"
	KeyColor       = "color"
	KeyWorkingPath = "working_path"
	KeyHidden      = "hidden"
	KeyHelpText    = "help_text"
	KeyCommands    = "commands"
	KeyTexts       = "texts"
)

// Message keys looked up through GetText
const (
	TextDirectoryHeader    = "directory_header"
	TextDirectoryCorrupted = "directory_corrupted"
	TextUnknownCommand     = "unknown_command"
	TextFileCorrupted      = "file_corrupted"
	TextMissingHelpText    = "missing_help_text"
	TextAccessDenied       = "access_denied"
	TextHackSuccess        = "hack_success"
	TextFileClosed         = "file_closed"
)

// MissingText is returned by GetText when neither the config nor the caller
// has lines for a key.
const MissingText = "Missing texts in config..."

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = "config.json"

// Store holds the effective configuration: built-in defaults overlaid with
// the config file. The commands mapping is fixed once loaded.
type Store struct {
	mu       sync.RWMutex
	settings map[string]interface{}
	commands map[string]string
	texts    map[string][]string
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		KeyFullscreen:  false,
		KeyWidth:       1024,
		KeyHeight:      768,
		KeyFontSize:    12,
		KeyFontFamily:  "Courier New",
		KeyBgColor:     "#000000",
		KeyColor:       "#00ff00",
		KeyWorkingPath: ".",
		KeyHidden:      []string{},
	}
}

// DefaultCommands returns the stock verb to operation mapping
func DefaultCommands() map[string]string {
	return map[string]string{
		"cd":               "change_directory",
		"dir":              "show_directory",
		"open":             "read_file",
		"bypass":           "hack_file",
		"exit":             "exit_file",
		"exitFromThisHell": "exit_app",
		"help":             "show_help",
	}
}

func defaultTexts() map[string][]string {
	return map[string][]string{
		TextDirectoryHeader:    {"______Dirrectory_______"},
		TextDirectoryCorrupted: {"Uszkodzony katalog..."},
		TextUnknownCommand:     {"Nieznane polecenie. Wpisz help, aby uzyskac liste polecen."},
		TextFileCorrupted:      {"Brak lub uszkodzony plik"},
		TextMissingHelpText:    {"Brak tekstu do pomocy..."},
		TextAccessDenied:       {"Brak dostepu..."},
		TextHackSuccess:        {"Obejscie zabezpieczen... OK"},
		TextFileClosed:         {"Plik zamkniety."},
	}
}

// New returns a store holding only the built-in defaults
func New() *Store {
	s := &Store{
		settings: defaultSettings(),
		commands: DefaultCommands(),
		texts:    defaultTexts(),
	}
	s.parseColors()
	return s
}

// Load overlays the file at path onto the defaults. A missing file is not an
// error; the defaults are returned as they are.
func Load(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}

	raw, err := readRaw(path)
	if err != nil {
		if os.IsNotExist(errors.Unwrap(err)) {
			log.LogWithFields(log.F("path", path)).Info("config file not found, using default config")
			return s, nil
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(raw, true)
	return s, nil
}

// Reload re-reads path and applies every setting except commands
func (s *Store) Reload(path string) error {
	raw, err := readRaw(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(raw, false)
	log.LogWithFields(log.F("path", path), log.F("keys", len(raw))).Info("config reloaded")
	return nil
}

func readRaw(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	raw := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &raw)
	}
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	return raw, nil
}

// apply must be called with mu held
func (s *Store) apply(raw map[string]interface{}, withCommands bool) {
	for key, value := range raw {
		switch key {
		case KeyCommands:
			if !withCommands {
				continue
			}
			cmds, ok := toCommands(value)
			if !ok {
				log.LogWithFields(log.F("key", key)).Warn("commands is not a mapping, keeping defaults")
				continue
			}
			s.commands = cmds
		case KeyTexts:
			texts, ok := toTexts(value)
			if !ok {
				log.LogWithFields(log.F("key", key)).Warn("texts is not a mapping, keeping defaults")
				continue
			}
			for k, lines := range texts {
				s.texts[k] = lines
			}
		default:
			s.settings[key] = value
		}
	}
	s.parseColors()
}

// parseColors turns every *color* string setting into a Color. Malformed
// values fall back to the default for the key, or to the default foreground.
func (s *Store) parseColors() {
	defaults := defaultSettings()
	for key, value := range s.settings {
		if !isColorKey(key) {
			continue
		}
		if _, ok := value.(Color); ok {
			continue
		}
		str, _ := value.(string)
		c, err := ParseColor(str)
		if err == nil {
			s.settings[key] = c
			continue
		}

		fallback, ok := defaults[key].(string)
		if !ok {
			fallback = defaults[KeyColor].(string)
		}
		log.LogWithError(err).Warnf("malformed color for %s, using %s", key, fallback)
		c, _ = ParseColor(fallback)
		s.settings[key] = c
	}
}

// Get returns the value for key, or def when it is not set
func (s *Store) Get(key string, def interface{}) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch key {
	case KeyCommands:
		return copyCommands(s.commands)
	case KeyTexts:
		return copyTexts(s.texts)
	}
	if v, ok := s.settings[key]; ok {
		return v
	}
	return def
}

// Set stores value under key. Writes to commands are rejected, as are color
// strings that do not parse.
func (s *Store) Set(key string, value interface{}) bool {
	if key == KeyCommands {
		log.LogWithError(errors.NewConfigError("setting is read-only", key, errors.ReadOnlySetting, nil)).Warn("set rejected")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key == KeyTexts {
		texts, ok := toTexts(value)
		if !ok {
			return false
		}
		for k, lines := range texts {
			s.texts[k] = lines
		}
		return true
	}

	if isColorKey(key) {
		switch v := value.(type) {
		case Color:
		case string:
			c, err := ParseColor(v)
			if err != nil {
				log.LogWithError(err).Warn("set rejected")
				return false
			}
			value = c
		default:
			return false
		}
	}

	s.settings[key] = value
	return true
}

// GetText returns the lines configured for a message key
func (s *Store) GetText(key string, def []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if lines, ok := s.texts[key]; ok {
		return append([]string(nil), lines...)
	}
	if def != nil {
		return def
	}
	return []string{MissingText}
}

// Commands returns a copy of the verb to operation mapping
func (s *Store) Commands() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCommands(s.commands)
}

func (s *Store) String(key, def string) string {
	if v, ok := s.Get(key, nil).(string); ok {
		return v
	}
	return def
}

func (s *Store) Bool(key string, def bool) bool {
	if v, ok := s.Get(key, nil).(bool); ok {
		return v
	}
	return def
}

// Int accepts the integer shapes the JSON and YAML decoders produce
func (s *Store) Int(key string, def int) int {
	switch v := s.Get(key, nil).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	}
	return def
}

// Color returns the parsed color for key, or def when missing
func (s *Store) Color(key string, def Color) Color {
	if v, ok := s.Get(key, nil).(Color); ok {
		return v
	}
	return def
}

// Lines returns key as a list of lines. A plain string is a single line.
func (s *Store) Lines(key string) ([]string, bool) {
	return toLines(s.Get(key, nil))
}

// Snapshot returns the effective settings in a marshal-friendly form
func (s *Store) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]interface{}, len(s.settings)+2)
	for k, v := range s.settings {
		if c, ok := v.(Color); ok {
			v = c.Hex()
		}
		out[k] = v
	}
	out[KeyCommands] = copyCommands(s.commands)
	out[KeyTexts] = copyTexts(s.texts)
	return out
}

// Keys returns the sorted setting names, excluding commands and texts
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the snapshot to path, as YAML or JSON depending on the extension.
// It creates parent directories if they don't exist.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := s.Marshal(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewConfigError("failed to write config file", path, errors.InvalidConfig, err)
	}
	return nil
}

// Marshal renders the snapshot as YAML for ".yaml"/".yml" and JSON otherwise
func (s *Store) Marshal(ext string) ([]byte, error) {
	snap := s.Snapshot()
	if ext == ".yaml" || ext == ".yml" {
		data, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append(data, '\n'), nil
}

func toCommands(value interface{}) (map[string]string, bool) {
	m, ok := value.(map[string]interface{})
	if !ok {
		if sm, ok := value.(map[string]string); ok {
			return copyCommands(sm), true
		}
		return nil, false
	}
	out := make(map[string]string, len(m))
	for verb, target := range m {
		// Non-string targets are kept as unresolvable so the verb still
		// answers with the unknown command text.
		name, _ := target.(string)
		out[verb] = name
	}
	return out, true
}

func toTexts(value interface{}) (map[string][]string, bool) {
	switch m := value.(type) {
	case map[string][]string:
		return copyTexts(m), true
	case map[string]interface{}:
		out := make(map[string][]string, len(m))
		for k, v := range m {
			lines, ok := toLines(v)
			if !ok {
				continue
			}
			out[k] = lines
		}
		return out, true
	}
	return nil, false
}

func toLines(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	}
	return nil, false
}

func copyCommands(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyTexts(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
