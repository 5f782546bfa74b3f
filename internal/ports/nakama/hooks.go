package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/domain"
)

// AfterAuthenticateDevice is triggered after an account is authenticated.
// It seeds an empty assistant game for new accounts.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	return seedNewAccount(ctx, logger, nk, out)
}

func seedNewAccount(ctx context.Context, logger runtime.Logger, nk storageModule, out *api.Session) error {
	if out == nil || !out.Created {
		return nil
	}
	userID := ""
	if ctxUserID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok {
		userID = ctxUserID
	}
	if userID == "" {
		resolvedID, err := extractUserIDFromToken(out.Token)
		if err != nil {
			logger.Error("AfterAuthenticateDevice: Failed to extract user ID from token: %v", err)
			return err
		}
		userID = resolvedID
	}

	cfg := currentConfig()
	store := NewNakamaStorageStore(nk, cfg.Snapshot.Collection, userID)
	if err := store.Save(ctx, cfg.Snapshot.Slot, domain.NewGameState()); err != nil {
		// The slot is created lazily on the first action anyway.
		logger.Warn("AfterAuthenticateDevice: Failed to seed game for user %s: %v", userID, err)
		return nil
	}
	logger.Info("AfterAuthenticateDevice: Seeded assistant game for new user %s", userID)
	return nil
}

// extractUserIDFromToken reads the "uid" claim of a Nakama session token. The token was just
// issued by the server, so the signature is not checked.
func extractUserIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("token claims missing uid")
	}
	return uid, nil
}
