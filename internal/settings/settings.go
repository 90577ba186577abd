// Package settings persists the local profile and preferences of the
// taskflow CLI in a YAML file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileName = "settings.yaml"

type Avatar struct {
	Color    string `yaml:"color" json:"color"`
	Initials string `yaml:"initials" json:"initials"`
}

type Profile struct {
	Name   string `yaml:"name" json:"name"`
	Email  string `yaml:"email" json:"email"`
	Avatar Avatar `yaml:"avatar" json:"avatarDetails"`
}

type Preferences struct {
	Notifications bool `yaml:"notifications" json:"notifications"`
	EmailDigest   bool `yaml:"email_digest" json:"emailDigest"`
}

type Settings struct {
	Server      string      `yaml:"server"`
	LoginID     string      `yaml:"login_id,omitempty"`
	Profile     Profile     `yaml:"profile"`
	Preferences Preferences `yaml:"preferences"`
}

type ProfilePatch struct {
	Name        *string
	Email       *string
	AvatarColor *string
}

type PreferencesPatch struct {
	Notifications *bool
	EmailDigest   *bool
}

func Default() Settings {
	return Settings{
		Server: "http://localhost:5000",
		Profile: Profile{
			Name:   "John Doe",
			Email:  "john.doe@example.com",
			Avatar: Avatar{Color: "blue", Initials: "JD"},
		},
		Preferences: Preferences{Notifications: true},
	}
}

// DefaultPath is $TASKFLOW_HOME/settings.yaml, falling back to the user
// config directory.
func DefaultPath() string {
	if home := os.Getenv("TASKFLOW_HOME"); home != "" {
		return filepath.Join(home, fileName)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "taskflow", fileName)
}

// Store is a Settings value bound to a file. Every update is written
// through immediately.
type Store struct {
	path string

	mu  sync.Mutex
	cur Settings
}

// Open reads path. A missing file yields the defaults; it is created on
// the first update.
func Open(path string) (*Store, error) {
	s := &Store{path: path, cur: Default()}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.cur); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Store) UpdateProfile(p ProfilePatch) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return s.cur.Profile, errors.New("name must not be empty")
		}
		next.Profile.Name = name
		next.Profile.Avatar.Initials = Initials(name)
	}
	if p.Email != nil {
		next.Profile.Email = strings.TrimSpace(*p.Email)
	}
	if p.AvatarColor != nil {
		next.Profile.Avatar.Color = *p.AvatarColor
	}
	if err := s.save(next); err != nil {
		return s.cur.Profile, err
	}
	return next.Profile, nil
}

func (s *Store) UpdatePreferences(p PreferencesPatch) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	if p.Notifications != nil {
		next.Preferences.Notifications = *p.Notifications
	}
	if p.EmailDigest != nil {
		next.Preferences.EmailDigest = *p.EmailDigest
	}
	if err := s.save(next); err != nil {
		return s.cur.Preferences, err
	}
	return next.Preferences, nil
}

// SetSession remembers the server and the member signed in on it.
func (s *Store) SetSession(server, loginID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	if server != "" {
		next.Server = server
	}
	next.LoginID = loginID
	return s.save(next)
}

// save writes next to disk and makes it current. Callers hold mu.
func (s *Store) save(next Settings) error {
	data, err := yaml.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	s.cur = next
	return nil
}

// Initials takes the first letter of the first two words, upper-cased.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(w))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
