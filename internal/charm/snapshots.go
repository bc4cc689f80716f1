// ABOUTME: Export snapshots stored in Charm KV under time-ordered ULID keys.
// ABOUTME: Push, list, fetch and prune; restoring is an import of a fetched snapshot.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/ecoeats/internal/storage"
	"github.com/oklog/ulid/v2"
)

// SnapshotPrefix namespaces snapshot keys.
const SnapshotPrefix = "snapshot:"

// Snapshot describes one stored backup.
type Snapshot struct {
	Key       string    `json:"key"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// PushSnapshot stores data as a new snapshot and returns its description.
func (c *Client) PushSnapshot(data *storage.ExportData) (*Snapshot, error) {
	id := ulid.Make()
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	key := SnapshotPrefix + id.String()
	if err := c.set(key, payload); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	return &Snapshot{Key: key, ID: id.String(), CreatedAt: ulid.Time(id.Time()).UTC()}, nil
}

// ListSnapshots returns every snapshot, newest first.
func (c *Client) ListSnapshots() ([]*Snapshot, error) {
	keys, err := c.keysWithPrefix(SnapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	snaps := make([]*Snapshot, 0, len(keys))
	for _, key := range keys {
		id, err := ulid.ParseStrict(strings.TrimPrefix(key, SnapshotPrefix))
		if err != nil {
			continue // Skip foreign keys
		}
		snaps = append(snaps, &Snapshot{
			Key:       key,
			ID:        id.String(),
			CreatedAt: ulid.Time(id.Time()).UTC(),
		})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID > snaps[j].ID })
	return snaps, nil
}

// GetSnapshot loads a snapshot by ID or unique ID prefix; "" or "latest" picks the newest.
func (c *Client) GetSnapshot(idOrPrefix string) (*Snapshot, *storage.ExportData, error) {
	snaps, err := c.ListSnapshots()
	if err != nil {
		return nil, nil, err
	}
	if len(snaps) == 0 {
		return nil, nil, fmt.Errorf("no snapshots found")
	}

	var match *Snapshot
	if idOrPrefix == "" || idOrPrefix == "latest" {
		match = snaps[0]
	} else {
		want := strings.ToUpper(strings.TrimPrefix(idOrPrefix, SnapshotPrefix))
		for _, s := range snaps {
			if strings.HasPrefix(s.ID, want) {
				if match != nil {
					return nil, nil, fmt.Errorf("ambiguous prefix %s: matches multiple snapshots", idOrPrefix)
				}
				match = s
			}
		}
		if match == nil {
			return nil, nil, fmt.Errorf("snapshot not found: %s", idOrPrefix)
		}
	}

	payload, err := c.get(match.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("get snapshot: %w", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return match, &data, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how many went.
func (c *Client) PruneSnapshots(keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1")
	}
	snaps, err := c.ListSnapshots()
	if err != nil {
		return 0, err
	}
	if len(snaps) <= keep {
		return 0, nil
	}

	var stale []string
	for _, s := range snaps[keep:] {
		stale = append(stale, s.Key)
	}
	if err := c.deleteKeys(stale); err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return len(stale), nil
}
