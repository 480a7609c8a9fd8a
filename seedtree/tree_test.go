package seedtree

import (
	"bytes"
	"testing"
)

func TestGenerateLeafCount(t *testing.T) {
	root := bytes.Repeat([]byte{0x01}, 16)
	depth := 5
	tree, err := Generate(root, depth)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	seen := make(map[string]bool)
	n := 1 << uint(depth)
	for i := 0; i < n; i++ {
		leaf, err := tree.Leaf(i)
		if err != nil {
			t.Fatalf("Leaf(%d): %v", i, err)
		}
		if len(leaf) != 16 {
			t.Fatalf("leaf %d length = %d, want 16", i, len(leaf))
		}
		seen[string(leaf)] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct leaves, got %d", n, len(seen))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	root := bytes.Repeat([]byte{0x02}, 16)
	a, err := Generate(root, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(root, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < 16; i++ {
		la, _ := a.Leaf(i)
		lb, _ := b.Leaf(i)
		if !bytes.Equal(la, lb) {
			t.Fatalf("leaf %d differs between two generations from the same root", i)
		}
	}
}

func TestLeafOutOfRange(t *testing.T) {
	root := make([]byte, 16)
	tree, err := Generate(root, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := tree.Leaf(-1); err == nil {
		t.Error("expected error for negative leaf index")
	}
	if _, err := tree.Leaf(8); err == nil {
		t.Error("expected error for leaf index == 2^depth")
	}
}

func TestNodeIndexLayout(t *testing.T) {
	cases := []struct {
		level, idx, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{1, 1, 2},
		{2, 0, 3},
		{2, 3, 6},
	}
	for _, c := range cases {
		if got := NodeIndex(c.level, c.idx); got != c.want {
			t.Errorf("NodeIndex(%d,%d) = %d, want %d", c.level, c.idx, got, c.want)
		}
	}
}

func TestNodeSiblingDiffers(t *testing.T) {
	root := bytes.Repeat([]byte{0x03}, 16)
	tree, err := Generate(root, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	left, err := tree.Node(1, 0)
	if err != nil {
		t.Fatalf("Node(1,0): %v", err)
	}
	right, err := tree.Node(1, 1)
	if err != nil {
		t.Fatalf("Node(1,1): %v", err)
	}
	if bytes.Equal(left, right) {
		t.Error("left and right children of the root are equal")
	}
}
