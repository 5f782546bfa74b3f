package nakama

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"

	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/config"
)

// InitModule loads the assistant config and wires RPCs and hooks for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	cfg, err := config.Load(ConfigPath, nil)
	switch {
	case err == nil:
		moduleConfig = cfg
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("InitModule: %s not found, using defaults.", ConfigPath)
		moduleConfig = config.Default()
	default:
		logger.Warn("InitModule: Could not load config, using defaults: %v", err)
		moduleConfig = config.Default()
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Bisca assistant module loaded (slot %s, collection %s).", moduleConfig.Snapshot.Slot, moduleConfig.Snapshot.Collection)
	return nil
}
