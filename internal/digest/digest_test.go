package digest

import (
	"errors"
	"testing"
)

func TestDigestVectors(t *testing.T) {
	tests := []struct {
		algo  Algorithm
		input string
		want  string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA1, "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{SHA3_256, "abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}

	d := Default()
	for _, tt := range tests {
		t.Run(string(tt.algo)+"/"+tt.input, func(t *testing.T) {
			got, err := d.Digest(tt.algo, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Digest(%s, %q) = %s, want %s", tt.algo, tt.input, got, tt.want)
			}
		})
	}
}

func TestDigestDeterministic(t *testing.T) {
	d := Default()
	for _, algo := range []Algorithm{MD5, SHA1, SHA256, SHA512, SHA3_256, BLAKE2b256} {
		a, err := d.Digest(algo, "excellent selection")
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		b, _ := d.Digest(algo, "excellent selection")
		if a != b {
			t.Errorf("%s not deterministic: %s vs %s", algo, a, b)
		}
	}
}

func TestDigestBLAKE2bLength(t *testing.T) {
	got, err := Default().Digest(BLAKE2b256, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 64 {
		t.Errorf("hex length = %d, want 64", len(got))
	}
}

func TestDigestUnsupported(t *testing.T) {
	_, err := Default().Digest("crc32", "abc")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
