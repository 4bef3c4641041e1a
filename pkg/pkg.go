//nolint:gochecknoglobals
package pkg

import (
	"github.com/maloquacious/semver"
)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "fbxtree"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "ASCII FBX scene tree inspector"
	// Extension is the file name extension of ASCII FBX documents.
	Extension = ".fbx"
)

var version = semver.Version{
	Major: 0,
	Minor: 3,
	Patch: 0,
	Build: semver.Commit(),
}

// Version returns the semantic version of the module. Build metadata carries
// the VCS revision when available.
func Version() semver.Version {
	return version
}

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// String formats a as "Name <Email>", omitting whichever part is empty.
func (a AuthorInfo) String() string {
	switch {
	case a.Email == "":
		return a.Name
	case a.Name == "":
		return "<" + a.Email + ">"
	default:
		return a.Name + " <" + a.Email + ">"
	}
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
