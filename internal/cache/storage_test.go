// File path: internal/cache/storage_test.go
package cache

import "testing"

func TestStorageMissingFileIsNotAnError(t *testing.T) {
	storage := testStorage(t)
	var v map[string]string
	found, err := storage.LoadJSON("fehlt.json", &v)
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if found {
		t.Fatal("missing file reported as found")
	}
}

func TestStorageSaveAndLoad(t *testing.T) {
	storage := testStorage(t)
	in := map[string]int{"eins": 1, "zwei": 2}
	if !storage.SaveJSON("zahlen.json", in) {
		t.Fatal("save failed")
	}
	out := make(map[string]int)
	found, err := storage.LoadJSON("zahlen.json", &out)
	if err != nil || !found {
		t.Fatalf("load failed: found=%v err=%v", found, err)
	}
	if out["eins"] != 1 || out["zwei"] != 2 {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestStorageRequiresDir(t *testing.T) {
	if _, err := NewStorage(""); err == nil {
		t.Fatal("empty dir must be rejected")
	}
}
