// Package watchlist defines the registries a run watches.
//
// A Target names one directory of token-metadata files inside a hosted
// repository. The default watchlist holds the single Cardano token registry;
// a watchlist.yaml can replace it with any number of targets.
package watchlist

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "nightwatch/internal/errors"
)

// DefaultWatchlistFile is the default filename for the watchlist
const DefaultWatchlistFile = "watchlist.yaml"

// Target is one watched registry directory
type Target struct {
	// Name is a human-readable label used in multi-target reports
	Name string `yaml:"name"`

	// Repo is the owner/name of the hosted repository
	Repo string `yaml:"repo"`

	// Path is the watched directory inside the repository
	Path string `yaml:"path"`

	// Extension is the registry file extension, ".json" unless overridden
	Extension string `yaml:"extension"`

	// MetadataURL is a template for the external metadata lookup page,
	// with %s standing in for the subject
	MetadataURL string `yaml:"metadataUrl"`

	// TreeURL is the browse page for the watched directory; derived from
	// Repo and Path when empty
	TreeURL string `yaml:"treeUrl"`
}

// watchlistFile is the root structure of watchlist.yaml
type watchlistFile struct {
	Targets []Target `yaml:"targets"`
}

// Default returns the built-in single-target watchlist.
func Default() []Target {
	return []Target{{
		Name:        "Cardano token registry",
		Repo:        "cardano-foundation/cardano-token-registry",
		Path:        "mappings",
		Extension:   ".json",
		MetadataURL: "https://tokens.cardano.org/metadata/%s",
	}}
}

// Load parses a watchlist.yaml from the given path.
func Load(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.WatchlistInvalid, "reading watchlist", err)
	}

	var file watchlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Wrap(apperrors.WatchlistInvalid, "parsing watchlist", err)
	}
	if len(file.Targets) == 0 {
		return nil, apperrors.New(apperrors.WatchlistInvalid, "watchlist declares no targets")
	}

	for i := range file.Targets {
		tgt := &file.Targets[i]
		if tgt.Repo == "" {
			return nil, apperrors.New(apperrors.WatchlistInvalid,
				fmt.Sprintf("target %d is missing a repo", i))
		}
		if tgt.Path == "" {
			return nil, apperrors.New(apperrors.WatchlistInvalid,
				fmt.Sprintf("target %d is missing a path", i))
		}
		if tgt.Extension == "" {
			tgt.Extension = ".json"
		}
		if tgt.Name == "" {
			tgt.Name = tgt.Repo
		}
	}

	return file.Targets, nil
}

// Matches reports whether a changed file belongs to this target's registry.
func (t Target) Matches(filename string) bool {
	return strings.HasPrefix(filename, t.Path+"/") && strings.HasSuffix(filename, t.Extension)
}

// Subject derives the canonical token identifier from a registry filename,
// stripping the watched directory and the file extension.
func (t Target) Subject(filename string) string {
	base := strings.TrimPrefix(filename, t.Path+"/")
	return strings.TrimSuffix(base, t.Extension)
}

// CommitPage returns the browse URL for a commit.
func (t Target) CommitPage(sha string) string {
	return fmt.Sprintf("https://github.com/%s/commit/%s", t.Repo, sha)
}

// BlobPage returns the browse URL for a registry file.
func (t Target) BlobPage(filename string) string {
	return fmt.Sprintf("https://github.com/%s/blob/master/%s", t.Repo, filename)
}

// MetadataPage returns the external metadata lookup URL for a subject.
// Empty when the target declares no metadata URL template.
func (t Target) MetadataPage(subject string) string {
	if t.MetadataURL == "" {
		return ""
	}
	return fmt.Sprintf(t.MetadataURL, subject)
}

// TreePage returns the browse URL for the watched directory.
func (t Target) TreePage() string {
	if t.TreeURL != "" {
		return t.TreeURL
	}
	return fmt.Sprintf("https://github.com/%s/tree/master/%s", t.Repo, t.Path)
}
