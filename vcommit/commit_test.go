package vcommit

import (
	"bytes"
	"testing"
)

func TestCommitDeterministic(t *testing.T) {
	root := bytes.Repeat([]byte{0x01}, 16)
	iv := bytes.Repeat([]byte{0x02}, 16)

	a, err := Commit(root, iv, 5)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	b, err := Commit(root, iv, 5)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !bytes.Equal(a.H, b.H) {
		t.Error("Commit produced different h for identical inputs")
	}
}

func TestCommitLeafCounts(t *testing.T) {
	root := make([]byte, 16)
	iv := make([]byte, 16)
	depth := 4
	c, err := Commit(root, iv, depth)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	n := 1 << uint(depth)
	if len(c.Sd) != n || len(c.Com) != n {
		t.Fatalf("got %d sd / %d com, want %d each", len(c.Sd), len(c.Com), n)
	}
	if len(c.H) != 2*c.LambdaBytes {
		t.Fatalf("h length = %d, want %d", len(c.H), 2*c.LambdaBytes)
	}
}

// TestCommitMatchesStreaming exercises Property 2 at the StreamCommitment
// level: every (sd_i, com_i) pair agrees between the materialized and
// streaming vector commitments.
func TestCommitMatchesStreaming(t *testing.T) {
	root := bytes.Repeat([]byte{0x03}, 16)
	iv := bytes.Repeat([]byte{0x04}, 16)
	depth := 6

	c, err := Commit(root, iv, depth)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	sc := NewStreamCommitment(root, iv, depth)

	n := 1 << uint(depth)
	for i := 0; i < n; i++ {
		sd, com, err := sc.GetSdCom(i)
		if err != nil {
			t.Fatalf("GetSdCom(%d): %v", i, err)
		}
		if !bytes.Equal(sd, c.Sd[i]) {
			t.Fatalf("leaf %d: sd disagrees between materialized and streaming", i)
		}
		if !bytes.Equal(com, c.Com[i]) {
			t.Fatalf("leaf %d: com disagrees between materialized and streaming", i)
		}
	}
}
