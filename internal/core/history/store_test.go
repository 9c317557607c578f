package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/zencrawl/internal/protocol"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAddNewestFirst(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add(Completed(protocol.KindSingle, "https://a.example", json.RawMessage(`{"markdown":"# A"}`)))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Add(Failed(protocol.KindSearch, "golang", "rate limited"))
	if err != nil {
		t.Fatal(err)
	}

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", first.ID, second.ID)
	}
	if first.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("expected most recent first, got %q", list[0].ID)
	}
	if list[0].Status != StatusFailed || list[0].Error != "rate limited" || list[0].Result != nil {
		t.Errorf("unexpected failed record: %+v", list[0])
	}
	if list[1].Status != StatusCompleted || list[1].Error != "" || string(list[1].Result) != `{"markdown":"# A"}` {
		t.Errorf("unexpected completed record: %+v", list[1])
	}
}

func TestStoreCapacityEvictsOldest(t *testing.T) {
	store := newTestStore(t)

	var ids []string
	for i := 0; i < MaxEntries+1; i++ {
		r, err := store.Add(Completed(protocol.KindMap, fmt.Sprintf("https://site%d.example", i), nil))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}

	if store.Len() != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, store.Len())
	}
	if _, ok := store.Get(ids[0]); ok {
		t.Error("expected the oldest entry to be evicted")
	}
	list := store.List()
	if list[0].ID != ids[MaxEntries] {
		t.Errorf("expected newest entry at head, got %q", list[0].Target)
	}
	if list[MaxEntries-1].ID != ids[1] {
		t.Errorf("expected second-oldest entry at tail, got %q", list[MaxEntries-1].Target)
	}
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t)

	a, _ := store.Add(Completed(protocol.KindSingle, "https://a.example", nil))
	b, _ := store.Add(Completed(protocol.KindSingle, "https://b.example", nil))

	if err := store.Remove("does-not-exist"); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("unknown id should be a no-op, got %d entries", store.Len())
	}

	if err := store.Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	list := store.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("expected only %q to remain, got %+v", b.ID, list)
	}
}

func TestStoreClearIdempotent(t *testing.T) {
	store := newTestStore(t)
	store.Add(Failed(protocol.KindCrawl, "https://a.example", ""))

	for i := 0; i < 2; i++ {
		if err := store.Clear(); err != nil {
			t.Fatal(err)
		}
		if store.Len() != 0 {
			t.Fatalf("expected empty store, got %d", store.Len())
		}
	}
}

func TestStoreDefaults(t *testing.T) {
	store := newTestStore(t)

	r, err := store.Add(Failed(protocol.KindSingle, "https://a.example", ""))
	if err != nil {
		t.Fatal(err)
	}
	if r.Error != DefaultErrorMessage {
		t.Errorf("expected %q, got %q", DefaultErrorMessage, r.Error)
	}

	r, err = store.Add(Completed(protocol.KindSingle, "https://a.example", nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Result) != "{}" {
		t.Errorf("expected empty object result, got %s", r.Result)
	}
}

func TestStoreRejectsInvalidRecord(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(NewRecord{Kind: "extract", Target: "x", Status: StatusFailed, Error: "boom"}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := store.Add(NewRecord{Kind: protocol.KindMap, Target: "x", Status: StatusCompleted, Result: json.RawMessage(`{}`), Error: "boom"}); err == nil {
		t.Error("expected error for record with both result and error")
	}
	if store.Len() != 0 {
		t.Errorf("expected nothing stored, got %d", store.Len())
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	store := newTestStore(t)
	ids := []string{"dup", "dup", "other"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	a, _ := store.Add(Completed(protocol.KindSingle, "https://a.example", nil))
	b, _ := store.Add(Completed(protocol.KindSingle, "https://b.example", nil))
	if a.ID != "dup" || b.ID != "other" {
		t.Errorf("expected ids dup and other, got %q and %q", a.ID, b.ID)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.UnixMilli(1700000000123)
	store.now = func() time.Time { return fixed }

	added, err := store.Add(Completed(protocol.KindCrawl, "https://docs.example", json.RawMessage(`[{"markdown":"x"}]`)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(Failed(protocol.KindSearch, "go tui", "timeout")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	list := reopened.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 entries after reopen, got %d", len(list))
	}
	got := list[1]
	if got.ID != added.ID || got.Kind != protocol.KindCrawl || got.Target != "https://docs.example" {
		t.Errorf("unexpected record after reopen: %+v", got)
	}
	if !got.Timestamp.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, got.Timestamp)
	}
	if list[0].Error != "timeout" {
		t.Errorf("expected failed record first, got %+v", list[0])
	}
}

func TestStoreWriteFailureRollsBack(t *testing.T) {
	store := newTestStore(t)
	store.Add(Completed(protocol.KindSingle, "https://a.example", nil))

	store.db.Close()

	if _, err := store.Add(Completed(protocol.KindSingle, "https://b.example", nil)); err == nil {
		t.Fatal("expected write error")
	}
	if err := store.Clear(); err == nil {
		t.Fatal("expected write error")
	}
	if store.Len() != 1 {
		t.Errorf("expected in-memory state unchanged, got %d entries", store.Len())
	}
}

func TestRecordWireFormat(t *testing.T) {
	r := Record{
		ID:        "abc",
		Kind:      protocol.KindSearch,
		Target:    "golang",
		Timestamp: time.UnixMilli(1700000000000),
		Status:    StatusFailed,
		Error:     "boom",
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"abc","type":"search","url":"golang","timestamp":1700000000000,"status":"failed","error":"boom"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	var back Record
	if err := json.Unmarshal([]byte(`{"id":"x","type":"map","url":"u","timestamp":1,"status":"failed","result":null,"error":"e"}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Result != nil || !back.valid() {
		t.Errorf("expected null result to decode as absent, got %+v", back)
	}
}

func TestStoreRecordsDoNotShareResultBytes(t *testing.T) {
	store := newTestStore(t)

	raw := json.RawMessage(`{"a":1}`)
	added, err := store.Add(Completed(protocol.KindSingle, "https://a.example", raw))
	if err != nil {
		t.Fatal(err)
	}

	raw[2] = 'Z'
	added.Result[3] = 'X'
	listed := store.List()
	listed[0].Result[3] = 'Q'
	got, ok := store.Get(added.ID)
	if !ok {
		t.Fatal("record not found")
	}
	got.Result[4] = 'W'

	if s := string(store.List()[0].Result); s != `{"a":1}` {
		t.Errorf("stored result changed through a caller's slice: %s", s)
	}
	if r, _ := store.Get(added.ID); string(r.Result) != `{"a":1}` {
		t.Errorf("Get returned a modified result: %s", r.Result)
	}
}
