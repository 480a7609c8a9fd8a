package seedtree

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestStreamMatchesMaterializedMonotonic(t *testing.T) {
	root := bytes.Repeat([]byte{0x09}, 16)
	depth := 6
	tree, err := Generate(root, depth)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	stream := NewStream(root, depth)

	n := 1 << uint(depth)
	for i := 0; i < n; i++ {
		want, err := tree.Leaf(i)
		if err != nil {
			t.Fatalf("Leaf(%d): %v", i, err)
		}
		got, err := stream.Leaf(i)
		if err != nil {
			t.Fatalf("stream.Leaf(%d): %v", i, err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("leaf %d: stream and materialized tree disagree", i)
		}
	}
}

func TestStreamMatchesMaterializedNonMonotonic(t *testing.T) {
	root := bytes.Repeat([]byte{0x0a}, 16)
	depth := 6
	tree, err := Generate(root, depth)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	stream := NewStream(root, depth)

	n := 1 << uint(depth)
	order := rand.New(rand.NewSource(1)).Perm(n)
	for _, i := range order {
		want, err := tree.Leaf(i)
		if err != nil {
			t.Fatalf("Leaf(%d): %v", i, err)
		}
		got, err := stream.Leaf(i)
		if err != nil {
			t.Fatalf("stream.Leaf(%d): %v", i, err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("leaf %d (visited out of order): stream and materialized tree disagree", i)
		}
	}
}

func TestStreamReset(t *testing.T) {
	root := bytes.Repeat([]byte{0x0b}, 16)
	depth := 4
	stream := NewStream(root, depth)

	a, err := stream.Leaf(3)
	if err != nil {
		t.Fatalf("Leaf(3): %v", err)
	}
	stream.Reset()
	b, err := stream.Leaf(3)
	if err != nil {
		t.Fatalf("Leaf(3) after reset: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("reset changed the leaf value for the same index")
	}
}
