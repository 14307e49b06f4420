package refs

import (
	"reflect"
	"testing"
)

func TestRefPath_IsValid(t *testing.T) {
	tests := []struct {
		path  RefPath
		valid bool
	}{
		{"refs/heads/main", true},
		{"refs/tags/v1.0.0", true},
		{"refs/heads/feature/x", true},
		{"HEAD", true},
		{"", false},
		{"refs/heads/my branch", false},
		{"refs/../heads/main", false},
		{"refs/heads/main.lock", false},
		{"refs/heads/main.", false},
		{"refs/heads/", false},
		{".refs/heads/main", false},
		{"/refs/heads/main", false},
		{"refs/heads/.hidden", false},
		{"refs/heads/a//b", false},
		{"refs/heads/a\x01b", false},
		{"refs/heads/a~1", false},
		{"refs/heads/ma*n", false},
		{"refs/heads/x@{1}", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			if got := tt.path.IsValid(); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.path, got, tt.valid)
			}
		})
	}
}

func TestRefPath_Classification(t *testing.T) {
	tests := []struct {
		path      RefPath
		isBranch  bool
		isTag     bool
		isHEAD    bool
		shortName string
	}{
		{"refs/heads/main", true, false, false, "main"},
		{"refs/heads/feature/new", true, false, false, "feature/new"},
		{"refs/tags/v1.0.0", false, true, false, "v1.0.0"},
		{"HEAD", false, false, true, "HEAD"},
		{"refs/notes/x", false, false, false, "refs/notes/x"},
		{"refs/headsx", false, false, false, "refs/headsx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			if got := tt.path.IsBranch(); got != tt.isBranch {
				t.Errorf("IsBranch() = %v, want %v", got, tt.isBranch)
			}
			if got := tt.path.IsTag(); got != tt.isTag {
				t.Errorf("IsTag() = %v, want %v", got, tt.isTag)
			}
			if got := tt.path.IsHEAD(); got != tt.isHEAD {
				t.Errorf("IsHEAD() = %v, want %v", got, tt.isHEAD)
			}
			if got := tt.path.ShortName(); got != tt.shortName {
				t.Errorf("ShortName() = %q, want %q", got, tt.shortName)
			}
		})
	}
}

func TestNewPrefixedRefs(t *testing.T) {
	tests := []struct {
		name     string
		build    func(string) (RefPath, error)
		input    string
		expected RefPath
		wantErr  bool
	}{
		{"branch", NewBranchRef, "main", "refs/heads/main", false},
		{"nested branch", NewBranchRef, "feature/new", "refs/heads/feature/new", false},
		{"empty branch", NewBranchRef, "", "", true},
		{"branch with space", NewBranchRef, "my branch", "", true},
		{"tag", NewTagRef, "v1.0.0", "refs/tags/v1.0.0", false},
		{"empty tag", NewTagRef, "", "", true},
		{"tag lock suffix", NewTagRef, "v1.lock", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		want []RefPath
	}{
		{"HEAD", []RefPath{"HEAD"}},
		{"refs/heads/main", []RefPath{"refs/heads/main"}},
		{"main", []RefPath{"refs/main", "refs/tags/main", "refs/heads/main"}},
		{"tags/v1", []RefPath{"refs/tags/v1", "refs/tags/tags/v1", "refs/heads/tags/v1"}},
		{"  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Candidates(tt.name); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
