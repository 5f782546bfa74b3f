package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/domain"
	"bisca/internal/ports"
)

// storageModule is the part of runtime.NakamaModule the store needs.
type storageModule interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaStorageStore implements ports.SessionStore with per-user Nakama storage objects.
type NakamaStorageStore struct {
	nk         storageModule
	collection string
	userID     string
}

// NewNakamaStorageStore creates a store writing into collection for userID.
func NewNakamaStorageStore(nk storageModule, collection, userID string) *NakamaStorageStore {
	return &NakamaStorageStore{nk: nk, collection: collection, userID: userID}
}

func (s *NakamaStorageStore) Load(ctx context.Context, slot string) (*domain.GameState, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: s.collection, Key: slot, UserID: s.userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	if len(objects) == 0 || objects[0].GetValue() == "" {
		return nil, nil
	}
	var state domain.GameState
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot %s: %w", slot, err)
	}
	return &state, nil
}

func (s *NakamaStorageStore) Save(ctx context.Context, slot string, state *domain.GameState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal slot %s: %w", slot, err)
	}
	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      s.collection,
			Key:             slot,
			UserID:          s.userID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}

var _ ports.SessionStore = (*NakamaStorageStore)(nil)
