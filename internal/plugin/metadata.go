package plugin

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// LibraryMetadata is the static record a module publishes about itself.
// Unset optional fields stay empty.
type LibraryMetadata struct {
	ModID          string `msgpack:"mod_id" cbor:"mod_id" yaml:"mod_id"`
	ModAuthor      string `msgpack:"mod_author" cbor:"mod_author" yaml:"mod_author"`
	ModName        string `msgpack:"mod_name" cbor:"mod_name" yaml:"mod_name"`
	ModVersion     string `msgpack:"mod_version" cbor:"mod_version" yaml:"mod_version"`
	ModDescription string `msgpack:"mod_description,omitempty" cbor:"mod_description,omitempty" yaml:"mod_description,omitempty"`
}

// Validate checks the fields the host relies on: a usable id and a semantic
// version ("0.0.1" or "v0.0.1").
func (m LibraryMetadata) Validate() error {
	if m.ModID == "" {
		return fmt.Errorf("module metadata: mod_id must not be empty")
	}
	if strings.ContainsAny(m.ModID, ": \t\n") {
		return fmt.Errorf("module metadata: mod_id %q must not contain ':' or whitespace", m.ModID)
	}
	if !semver.IsValid(m.CanonicalVersion()) {
		return fmt.Errorf("module %q: mod_version %q is not a semantic version", m.ModID, m.ModVersion)
	}
	return nil
}

// CanonicalVersion returns ModVersion with the "v" prefix semver expects.
func (m LibraryMetadata) CanonicalVersion() string {
	if strings.HasPrefix(m.ModVersion, "v") {
		return m.ModVersion
	}
	return "v" + m.ModVersion
}

// DisplayName returns ModName, or ModID when no name is set.
func (m LibraryMetadata) DisplayName() string {
	if m.ModName != "" {
		return m.ModName
	}
	return m.ModID
}

func (m LibraryMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.ModID, m.ModVersion)
}
