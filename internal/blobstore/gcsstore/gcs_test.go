package gcsstore

import "testing"

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			WithPrefix(tt.input)(s)
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_keyAndName(t *testing.T) {
	s := &Store{prefix: "uploads/"}

	if got := s.key("users/u1/1_a.pgn"); got != "uploads/users/u1/1_a.pgn" {
		t.Errorf("key() = %q", got)
	}
	if got := s.name("uploads/users/u1/1_a.pgn"); got != "users/u1/1_a.pgn" {
		t.Errorf("name() = %q", got)
	}

	bare := &Store{}
	if got := bare.key("a.md"); got != "a.md" {
		t.Errorf("key() without prefix = %q", got)
	}
}
