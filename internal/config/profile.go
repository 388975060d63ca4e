package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Profiles are stored as <label>.yaml under Root()/configs. The active label
// lives in Root()/current_config.

var ErrNoConfig = errors.New("no config selected")

// DefaultLabel is the profile created by `config init`. It cannot be removed.
const DefaultLabel = "Default"

type Profile struct {
	Label  string
	Path   string
	Active bool
}

func Root() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "storyd")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "storyd")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "storyd")
}

func ProfilesDir() string { return filepath.Join(Root(), "configs") }

func currentFile() string { return filepath.Join(Root(), "current_config") }

func profilePath(label string) string {
	return filepath.Join(ProfilesDir(), label+".yaml")
}

// checkLabel keeps labels usable as plain file names.
func checkLabel(label string) error {
	switch {
	case strings.TrimSpace(label) == "":
		return errors.New("label cannot be empty")
	case strings.ContainsAny(label, `/\`) || strings.HasPrefix(label, "."):
		return fmt.Errorf("label %q must be a plain name", label)
	}
	return nil
}

func activeLabel() string {
	b, err := os.ReadFile(currentFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Lookup returns an existing profile.
func Lookup(label string) (Profile, error) {
	if err := checkLabel(label); err != nil {
		return Profile{}, err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err != nil {
		return Profile{}, fmt.Errorf("config %q does not exist", label)
	}

	return Profile{Label: label, Path: path, Active: label == activeLabel()}, nil
}

// Active returns the selected profile, or ErrNoConfig when none is selected
// or its file is gone.
func Active() (Profile, error) {
	label := activeLabel()
	if label == "" {
		return Profile{}, ErrNoConfig
	}

	p, err := Lookup(label)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrNoConfig, err)
	}
	return p, nil
}

func List() ([]Profile, error) {
	entries, err := os.ReadDir(ProfilesDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	active := activeLabel()
	var out []Profile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, Profile{Label: label, Path: profilePath(label), Active: label == active})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Use makes an existing profile the active one.
func Use(label string) error {
	if _, err := Lookup(label); err != nil {
		return err
	}
	return os.WriteFile(currentFile(), []byte(label), 0644)
}

// Create validates cfg and stores it as a new profile.
func Create(label string, cfg *Config) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("config %q: %w", label, err)
	}
	if err := os.MkdirAll(ProfilesDir(), 0755); err != nil {
		return "", err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	return path, SaveYAML(cfg, path)
}

// Import stores the settings of an external YAML file as a new profile. The
// file is parsed and validated first, so a broken selector never lands in the
// profile directory.
func Import(label, src string) (string, error) {
	cfg, err := LoadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	return Create(label, cfg)
}

// Init creates the Default profile if needed and activates it. It returns
// os.ErrExist when the profile was already there.
func Init() (string, error) {
	path, err := Create(DefaultLabel, DefaultConfig())
	if err != nil {
		if _, serr := os.Stat(profilePath(DefaultLabel)); serr != nil {
			return "", err
		}
		path, err = profilePath(DefaultLabel), os.ErrExist
	}

	if uerr := Use(DefaultLabel); uerr != nil {
		return "", uerr
	}
	return path, err
}

// Remove deletes a profile. Removing the active one falls back to Default,
// which is returned as the new active label.
func Remove(label string) (string, error) {
	if label == DefaultLabel {
		return "", fmt.Errorf("cannot remove the %s config", DefaultLabel)
	}

	p, err := Lookup(label)
	if err != nil {
		return "", err
	}
	if err := os.Remove(p.Path); err != nil {
		return "", err
	}

	if !p.Active {
		return activeLabel(), nil
	}
	if err := Use(DefaultLabel); err != nil {
		return "", fmt.Errorf("removed %q but could not fall back to %s: %w", label, DefaultLabel, err)
	}
	return DefaultLabel, nil
}
