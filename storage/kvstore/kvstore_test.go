package kvstore

import (
	"io/ioutil"
	"os"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openTempStore(t *testing.T) Store {
	dir, err := ioutil.TempDir("", "kvstore")
	if err != nil {
		t.Fatalf("TempDir() failed: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	store, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	return store
}

func Test_fileStore_missingKeyLeavesDefault(t *testing.T) {
	store := openTempStore(t)

	docs := []doc{{Name: "default"}}
	if err := store.Get("nope", &docs); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "default" {
		t.Errorf("Get() on missing key mutated dst: %+v", docs)
	}
}

func Test_fileStore_roundTrip(t *testing.T) {
	store := openTempStore(t)

	want := []doc{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	if err := store.Set("docs", want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got []doc
	if err := store.Get("docs", &got); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Get() returned %d docs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("doc[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	// overwrite replaces the whole document
	if err := store.Set("docs", want[:1]); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got = nil
	if err := store.Get("docs", &got); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Get() after overwrite returned %d docs, want 1", len(got))
	}
}
