package workflow

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/pmkv/lib/store"
)

func TestRemoveAt(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for i := 0; i < n; i++ {
			list := make([]int, n)
			for k := range list {
				list[k] = k
			}

			got, removed, err := removeAt(list, i)
			if err != nil {
				t.Fatalf("removeAt(%d of %d) failed: %v", i, n, err)
			}
			if removed != i {
				t.Errorf("Expected removed element %d, got %d", i, removed)
			}
			if len(got) != n-1 {
				t.Errorf("Expected length %d, got %d", n-1, len(got))
			}
			for k := 0; k < i; k++ {
				if got[k] != k {
					t.Errorf("Entry %d changed after removing %d: %v", k, i, got)
				}
			}
			if i < n-1 && got[i] != n-1 {
				t.Errorf("Expected last element to move into slot %d, got %v", i, got)
			}
		}
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	list := []string{"a"}
	for _, i := range []int{-1, 1, 7} {
		got, _, err := removeAt(list, i)
		if !store.IsKind(err, store.KindLookup) {
			t.Errorf("index %d: expected lookup error, got %v", i, err)
		}
		if !reflect.DeepEqual(got, []string{"a"}) {
			t.Errorf("index %d: list must be unchanged, got %v", i, got)
		}
	}
}
