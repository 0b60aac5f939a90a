// Package seed loads demo data from YAML: the current user and a set of
// published startups.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/store"
)

// File is the on-disk seed layout
type File struct {
	CurrentUser *domain.User `yaml:"currentUser"`
	Startups    []Startup    `yaml:"startups"`
}

// Startup is a catalog entry as written in YAML. The score is a plain
// optional number there.
type Startup struct {
	domain.StartupIdea `yaml:",inline"`
	ValidationScore    *float64 `yaml:"validationScore"`
}

func (s Startup) idea() domain.StartupIdea {
	idea := s.StartupIdea
	if s.ValidationScore != nil {
		idea.ValidationScore = domain.NewScore(*s.ValidationScore)
	}
	return idea
}

// Parse decodes a seed document
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i, s := range f.Startups {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("startup #%d: missing id", i+1)
		}
	}
	return &f, nil
}

// Result reports what Import wrote
type Result struct {
	Startups    int
	CurrentUser bool
}

// Import publishes the startups and, when present, replaces the current user
func Import(ctx context.Context, s store.RecordStore, f *File) (Result, error) {
	ideas := make([]domain.StartupIdea, 0, len(f.Startups))
	for _, st := range f.Startups {
		ideas = append(ideas, st.idea())
	}

	var res Result
	if len(ideas) > 0 {
		if err := catalog.New(s).Publish(ctx, ideas...); err != nil {
			return res, err
		}
		res.Startups = len(ideas)
	}

	if f.CurrentUser != nil {
		if err := store.Save(ctx, s, store.CurrentUser, []domain.User{*f.CurrentUser}); err != nil {
			return res, fmt.Errorf("save current user: %w", err)
		}
		res.CurrentUser = true
	}
	return res, nil
}

// ImportFile parses path and imports it
func ImportFile(ctx context.Context, s store.RecordStore, path string) (Result, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return Result{}, err
	}
	return Import(ctx, s, f)
}
