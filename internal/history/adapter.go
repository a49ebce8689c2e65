package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/PatF3lix/Mapty-App/internal/workout"
)

// Adapter serializes a workout store to one JSON blob and rebuilds
// typed records from it. Every record round-trips with its full field
// set: base fields, the derived metric, and the description.
type Adapter struct {
	blobs BlobStore
	key   string
}

func NewAdapter(blobs BlobStore, key string) *Adapter {
	return &Adapter{blobs: blobs, key: key}
}

// Save overwrites the blob with the store's current contents.
func (a *Adapter) Save(ctx context.Context, store *workout.Store) error {
	blob, err := json.Marshal(store.All())
	if err != nil {
		return err
	}
	return a.blobs.Put(ctx, a.key, string(blob))
}

// Load reads and rehydrates the persisted history. An absent or
// malformed blob yields an empty history without error; only backend
// failures (store unreachable) are reported. Each decoded record is
// re-tagged through workout.Rehydrate so that variant behavior
// survives the round trip.
func (a *Adapter) Load(ctx context.Context) ([]workout.Workout, error) {
	blob, err := a.blobs.Get(ctx, a.key)
	if errors.Is(err, ErrNoBlob) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var decoded []workout.Workout
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		return nil, nil
	}

	records := make([]workout.Workout, 0, len(decoded))
	for _, raw := range decoded {
		w, err := workout.Rehydrate(raw)
		if err != nil {
			// One bad record means the blob cannot be trusted.
			return nil, nil
		}
		records = append(records, w)
	}
	return records, nil
}

// Clear removes the persisted blob.
func (a *Adapter) Clear(ctx context.Context) error {
	return a.blobs.Delete(ctx, a.key)
}
