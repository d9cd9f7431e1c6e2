package s3store

import "testing"

func TestOptions(t *testing.T) {
	var o options
	for _, opt := range []Option{
		WithPrefix("/data/v1/"),
		WithRegion("eu-west-1"),
		WithEndpoint("http://localhost:9000"),
	} {
		opt(&o)
	}

	if o.prefix != "data/v1/" {
		t.Errorf("prefix = %q, want %q", o.prefix, "data/v1/")
	}
	if o.region != "eu-west-1" {
		t.Errorf("region = %q", o.region)
	}
	if o.endpoint != "http://localhost:9000" {
		t.Errorf("endpoint = %q", o.endpoint)
	}
}

func TestStore_keyAndName(t *testing.T) {
	s := &Store{prefix: "data/v1/"}

	if got := s.key("games/a.pgn"); got != "data/v1/games/a.pgn" {
		t.Errorf("key() = %q", got)
	}
	if got := s.name("data/v1/games/a.pgn"); got != "games/a.pgn" {
		t.Errorf("name() = %q", got)
	}
	if got := s.key(""); got != "data/v1/" {
		t.Errorf("key(\"\") = %q", got)
	}
}
