package theme

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefObject   = "preferences"
	prefProperty = "theme"
)

// Preference is the only state the backdrop persists.
type Preference struct {
	Mode Mode `yaml:"mode"`
}

// Store loads and saves the theme preference through gdata.
// A nil manager runs in memory only; Save then succeeds without writing.
type Store struct {
	manager *gdata.Manager
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// OpenStore opens the gdata storage for appName. On failure it logs and
// returns a memory-only store.
func OpenStore(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Theme] Warning: storage unavailable: %v (preference will not persist)", err)
		return NewStore(nil)
	}
	return NewStore(m)
}

// Load returns the saved mode, or fallback when nothing was saved.
func (s *Store) Load(fallback Mode) (Mode, error) {
	if s.manager == nil || !s.manager.ObjectPropExists(prefObject, prefProperty) {
		return fallback, nil
	}

	data, err := s.manager.LoadObjectProp(prefObject, prefProperty)
	if err != nil {
		return fallback, fmt.Errorf("failed to load theme preference: %w", err)
	}

	var pref Preference
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return fallback, fmt.Errorf("failed to unmarshal theme preference: %w", err)
	}
	m, err := ParseMode(string(pref.Mode))
	if err != nil {
		return fallback, err
	}
	return m, nil
}

// Save persists m.
func (s *Store) Save(m Mode) error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(Preference{Mode: m})
	if err != nil {
		return fmt.Errorf("failed to marshal theme preference: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefObject, prefProperty, data); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}

	log.Printf("[Theme] Saved preference %q", m)
	return nil
}
