// ABOUTME: Unit tests for snapshot backups against an in-memory KV store.
// ABOUTME: Covers key format, ordering, prefix lookup, pruning and read-only mode.
package charm

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/ecoeats/internal/storage"
)

type memKV struct {
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Set(key, value []byte) error {
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, errors.New("missing key")
	}
	return v, nil
}

func (m *memKV) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memKV) Keys() ([][]byte, error) {
	var keys []string
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (m *memKV) Sync() error {
	m.syncs++
	return nil
}

func (m *memKV) Reset() error {
	m.data = map[string][]byte{}
	return nil
}

func (m *memKV) IsReadOnly() bool { return m.readOnly }

func (m *memKV) Close() error { return nil }

func exportFor(username string) *storage.ExportData {
	return &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "ecoeats",
		Users:      []*storage.ExportUser{{ID: 1, Username: username, CreatedAt: time.Now().UTC()}},
	}
}

func TestPushSnapshotKeyFormat(t *testing.T) {
	store := newMemKV()
	c := NewClient(store)

	snap, err := c.PushSnapshot(exportFor("harper"))
	if err != nil {
		t.Fatalf("PushSnapshot failed: %v", err)
	}
	if !strings.HasPrefix(snap.Key, SnapshotPrefix) {
		t.Errorf("Expected key to start with %q, got %q", SnapshotPrefix, snap.Key)
	}
	if len(snap.ID) != 26 {
		t.Errorf("Expected a 26 character ULID, got %q", snap.ID)
	}
	if time.Since(snap.CreatedAt) > time.Minute {
		t.Errorf("CreatedAt = %v, expected now", snap.CreatedAt)
	}
	if store.syncs != 1 {
		t.Errorf("Expected one sync after write, got %d", store.syncs)
	}
}

func TestListAndGetSnapshots(t *testing.T) {
	store := newMemKV()
	c := NewClient(store)
	c.SetAutoSync(false)

	if _, _, err := c.GetSnapshot("latest"); err == nil {
		t.Error("Expected error with no snapshots")
	}

	first, err := c.PushSnapshot(exportFor("first"))
	if err != nil {
		t.Fatalf("PushSnapshot failed: %v", err)
	}
	second, err := c.PushSnapshot(exportFor("second"))
	if err != nil {
		t.Fatalf("PushSnapshot failed: %v", err)
	}
	_ = store.Set([]byte("other:key"), []byte("x"))
	_ = store.Set([]byte(SnapshotPrefix+"not-a-ulid"), []byte("x"))

	snaps, err := c.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].ID != second.ID {
		t.Errorf("Expected newest first, got %s", snaps[0].ID)
	}
	if store.syncs != 0 {
		t.Errorf("Expected no syncs with auto-sync off, got %d", store.syncs)
	}

	_, data, err := c.GetSnapshot("")
	if err != nil {
		t.Fatalf("GetSnapshot latest failed: %v", err)
	}
	if data.Users[0].Username != "second" {
		t.Errorf("Expected latest snapshot, got user %q", data.Users[0].Username)
	}

	snap, data, err := c.GetSnapshot(strings.ToLower(first.ID))
	if err != nil {
		t.Fatalf("GetSnapshot by id failed: %v", err)
	}
	if snap.ID != first.ID || data.Users[0].Username != "first" {
		t.Errorf("Got snapshot %s for user %q", snap.ID, data.Users[0].Username)
	}

	if _, _, err := c.GetSnapshot(first.Key); err != nil {
		t.Errorf("Expected lookup by full key to work: %v", err)
	}
	if _, _, err := c.GetSnapshot("ZZZZ"); err == nil {
		t.Error("Expected not found error")
	}
}

func TestGetSnapshotAmbiguousPrefix(t *testing.T) {
	c := NewClient(newMemKV())
	for i := 0; i < 2; i++ {
		if _, err := c.PushSnapshot(exportFor("u")); err != nil {
			t.Fatalf("PushSnapshot failed: %v", err)
		}
	}
	// Both ULIDs share their leading timestamp characters.
	if _, _, err := c.GetSnapshot("0"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Expected ambiguous prefix error, got %v", err)
	}
}

func TestPruneSnapshots(t *testing.T) {
	c := NewClient(newMemKV())
	var ids []string
	for i := 0; i < 5; i++ {
		s, err := c.PushSnapshot(exportFor("u"))
		if err != nil {
			t.Fatalf("PushSnapshot failed: %v", err)
		}
		ids = append(ids, s.ID)
	}

	if _, err := c.PruneSnapshots(0); err == nil {
		t.Error("Expected error for keep=0")
	}

	removed, err := c.PruneSnapshots(2)
	if err != nil {
		t.Fatalf("PruneSnapshots failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Expected 3 removed, got %d", removed)
	}

	snaps, _ := c.ListSnapshots()
	if len(snaps) != 2 || snaps[0].ID != ids[4] || snaps[1].ID != ids[3] {
		t.Errorf("Expected the two newest snapshots to remain, got %v", snaps)
	}

	removed, err = c.PruneSnapshots(10)
	if err != nil || removed != 0 {
		t.Errorf("Expected nothing to prune, got %d, %v", removed, err)
	}
}

func TestReadOnlyStoreRejectsWrites(t *testing.T) {
	store := newMemKV()
	store.readOnly = true
	c := NewClient(store)

	if _, err := c.PushSnapshot(exportFor("u")); err == nil {
		t.Error("Expected write to fail in read-only mode")
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync should be a no-op in read-only mode, got %v", err)
	}
	if store.syncs != 0 {
		t.Errorf("Expected no syncs, got %d", store.syncs)
	}
}
