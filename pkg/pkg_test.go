package pkg

import (
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "fbxtree"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Expected non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	v := Version()

	if !strings.HasPrefix(v.String(), v.Core()) {
		t.Errorf("Expected %q to begin with core version %q", v.String(), v.Core())
	}

	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		t.Error("Expected a non-zero version")
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Expected Author to have at least one entry")
	}

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestAuthorInfo_String(t *testing.T) {
	tests := []struct {
		in   AuthorInfo
		want string
	}{
		{AuthorInfo{"ardnew", "andrew@ardnew.com"}, "ardnew <andrew@ardnew.com>"},
		{AuthorInfo{Name: "ardnew"}, "ardnew"},
		{AuthorInfo{Email: "andrew@ardnew.com"}, "<andrew@ardnew.com>"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPrefix_StripsDebugAndDotNames(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/usr/bin/fbxtree", "fbxtree"},
		{"/tmp/__debug_bin1234", Name},
		{"/home/u/.fbxtree.exe", "fbxtree"},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.in); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirs_EndWithPrefix(t *testing.T) {
	for name, dir := range map[string]func() string{
		"config": ConfigDir,
		"cache":  CacheDir,
		"data":   DataDir,
	} {
		if !strings.HasSuffix(dir(), Prefix()) {
			t.Errorf("%s dir %q does not end with %q", name, dir(), Prefix())
		}
	}
}
