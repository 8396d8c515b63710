package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestFlattenTree(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()
	otherID := uuid.New()

	categories := []Category{
		{ID: otherID, Name: "Travel"},
		{ID: rootID, Name: "Sales"},
		{ID: grandchildID, Name: "Licences", ParentID: &childID},
		{ID: childID, Name: "Software", ParentID: &rootID},
	}

	flat := FlattenTree(categories)
	if len(flat) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(flat))
	}

	depths := make(map[uuid.UUID]int, len(flat))
	index := make(map[uuid.UUID]int, len(flat))
	for i, f := range flat {
		depths[f.ID] = f.Depth
		index[f.ID] = i
	}

	if depths[rootID] != 0 || depths[otherID] != 0 {
		t.Fatalf("roots must have depth 0, got %d and %d", depths[rootID], depths[otherID])
	}
	if depths[childID] != 1 || depths[grandchildID] != 2 {
		t.Fatalf("child depths = %d, %d, want 1, 2", depths[childID], depths[grandchildID])
	}

	// Depth-first: parents come before their children.
	if index[rootID] > index[childID] || index[childID] > index[grandchildID] {
		t.Fatal("parents must precede their children")
	}
}

func TestFlattenTreeDanglingParent(t *testing.T) {
	missing := uuid.New()
	orphan := Category{ID: uuid.New(), Name: "Orphan", ParentID: &missing}

	flat := FlattenTree([]Category{orphan})
	if len(flat) != 1 {
		t.Fatalf("expected orphan to be kept, got %d entries", len(flat))
	}
	if flat[0].Depth != 0 {
		t.Fatalf("orphan must surface as a root, depth = %d", flat[0].Depth)
	}
}

func TestFlattenTreeParentCycle(t *testing.T) {
	aID := uuid.New()
	bID := uuid.New()
	categories := []Category{
		{ID: aID, Name: "Fees", ParentID: &bID},
		{ID: bID, Name: "Banking", ParentID: &aID},
	}

	flat := FlattenTree(categories)
	if len(flat) != 2 {
		t.Fatalf("cycle members must still be listed, got %d entries", len(flat))
	}
	seen := make(map[uuid.UUID]bool, len(flat))
	for _, f := range flat {
		if seen[f.ID] {
			t.Fatalf("category %s listed twice", f.Name)
		}
		seen[f.ID] = true
	}
	if flat[0].Depth != 0 {
		t.Fatalf("first cycle member must surface as a root, depth = %d", flat[0].Depth)
	}
}

func TestFlattenTreeEmpty(t *testing.T) {
	if got := FlattenTree(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
