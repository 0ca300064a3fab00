// Package arenas loads tank arena layouts: the player's start, the target
// tanks and optional map size and time limit overrides.
package arenas

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Spawn places one tank. Rotation is in degrees.
type Spawn struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Color    string  `yaml:"color"`
}

// Arena is one playable layout.
type Arena struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Width       float64 `yaml:"width"`  // 0 uses the configured map width
	Height      float64 `yaml:"height"` // 0 uses the configured map height
	TimeLimitS  int     `yaml:"time_limit_s"`
	Player      Spawn   `yaml:"player"`
	Targets     []Spawn `yaml:"targets"`
}

// TimeLimit returns the round limit; zero means none.
func (a Arena) TimeLimit() time.Duration {
	return time.Duration(a.TimeLimitS) * time.Second
}

// WithDefaults fills an unset map size.
func (a Arena) WithDefaults(width, height float64) Arena {
	if a.Width == 0 {
		a.Width = width
	}
	if a.Height == 0 {
		a.Height = height
	}
	a.Targets = slices.Clone(a.Targets)
	return a
}

// Validate checks that the arena is playable. Spawn bounds are only checked
// once the map size is known.
func (a Arena) Validate() error {
	var errs []error
	if strings.TrimSpace(a.ID) == "" {
		errs = append(errs, errors.New("id is empty"))
	}
	if a.Width < 0 || a.Height < 0 {
		errs = append(errs, fmt.Errorf("map size %vx%v is negative", a.Width, a.Height))
	}
	if a.TimeLimitS < 0 {
		errs = append(errs, fmt.Errorf("time_limit_s %d is negative", a.TimeLimitS))
	}
	if len(a.Targets) == 0 {
		errs = append(errs, errors.New("no targets"))
	}

	if a.Width > 0 && a.Height > 0 {
		if !a.inside(a.Player) {
			errs = append(errs, fmt.Errorf("player at (%v, %v) is outside the %vx%v map", a.Player.X, a.Player.Y, a.Width, a.Height))
		}
		for i, t := range a.Targets {
			if !a.inside(t) {
				errs = append(errs, fmt.Errorf("target %d at (%v, %v) is outside the %vx%v map", i, t.X, t.Y, a.Width, a.Height))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("arena %q: %w", a.ID, err)
	}
	return nil
}

func (a Arena) inside(s Spawn) bool {
	return s.X >= 0 && s.X <= a.Width && s.Y >= 0 && s.Y <= a.Height
}

// Parse decodes and validates one arena document. Unknown keys are errors.
func Parse(data []byte) (Arena, error) {
	var a Arena
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return Arena{}, fmt.Errorf("arenas: decode: %w", err)
	}
	if a.Title == "" {
		a.Title = a.ID
	}
	if err := a.Validate(); err != nil {
		return Arena{}, fmt.Errorf("arenas: %w", err)
	}
	return a, nil
}

// Load reads an arena file from disk.
func Load(filename string) (Arena, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Arena{}, fmt.Errorf("arenas: read %s: %w", filename, err)
	}
	a, err := Parse(data)
	if err != nil {
		return Arena{}, fmt.Errorf("%s: %w", filename, err)
	}
	return a, nil
}

// Embedded returns the built-in arenas sorted by ID.
func Embedded() ([]Arena, error) {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("arenas: list embedded: %w", err)
	}

	var out []Arena
	for _, e := range entries {
		data, err := embedded.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("arenas: read embedded %s: %w", e.Name(), err)
		}
		a, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("embedded %s: %w", e.Name(), err)
		}
		out = append(out, a)
	}

	slices.SortFunc(out, func(x, y Arena) int { return strings.Compare(x.ID, y.ID) })
	return out, nil
}

// MustEmbedded is Embedded for package initialization.
func MustEmbedded() []Arena {
	all, err := Embedded()
	if err != nil {
		panic(err)
	}
	return all
}
