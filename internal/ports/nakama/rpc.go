package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/app"
	"bisca/internal/config"
	"bisca/internal/domain"
)

// moduleConfig is set by InitModule; nil means defaults.
var moduleConfig *config.Config

func currentConfig() *config.Config {
	if moduleConfig == nil {
		return config.Default()
	}
	return moduleConfig
}

type startRequest struct {
	PlayerCount int      `json:"playerCount"`
	PlayerNames []string `json:"playerNames"`
	UserID      string   `json:"userId"`
	Trump       string   `json:"trump"`
	Opener      string   `json:"opener"`
}

type registerPlayRequest struct {
	PlayerID string `json:"playerId"`
	Card     string `json:"card"`
}

type updateHandRequest struct {
	Cards []string `json:"cards"`
}

// RegisterRPCs registers every assistant RPC with the initializer.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcStart:                 RpcStartGame,
		RpcRegisterPlay:          RpcRegisterPlayedCard,
		RpcUpdateHand:            RpcUpdateUserHand,
		RpcRequestRecommendation: RpcRecommend,
		RpcFinalizeRound:         RpcFinalize,
		RpcReset:                 RpcResetGame,
		RpcState:                 RpcGetState,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// RpcStartGame applies a configuration to the caller's game.
//
// Payload: {"playerCount":2,"playerNames":["Ana","Rui"],"userId":"player1","trump":"4S","opener":""}
func RpcStartGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req startRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cfg := domain.Config{PlayerCount: req.PlayerCount, PlayerNames: req.PlayerNames}
	if req.UserID != "" {
		id, err := domain.ParsePlayerID(req.UserID)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		cfg.UserID = id
	}
	if req.Opener != "" {
		id, err := domain.ParsePlayerID(req.Opener)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		cfg.Opener = id
	}
	if strings.TrimSpace(req.Trump) != "" {
		trump, err := domain.ParseCard(req.Trump)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		cfg.Trump = &trump
	}
	return dispatch(ctx, logger, nk, app.Start{Config: cfg})
}

// RpcRegisterPlayedCard records a card played by any seat.
//
// Payload: {"playerId":"player2","card":"7♥"}
func RpcRegisterPlayedCard(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req registerPlayRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	id, err := domain.ParsePlayerID(req.PlayerID)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	c, err := domain.ParseCard(req.Card)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	return dispatch(ctx, logger, nk, app.RegisterPlay{PlayerID: id, Card: c})
}

// RpcUpdateUserHand replaces the caller's tracked hand.
//
// Payload: {"cards":["A♥","7S","2c"]}
func RpcUpdateUserHand(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req updateHandRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cards, err := parseCards(req.Cards)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	return dispatch(ctx, logger, nk, app.UpdateHand{Cards: cards})
}

// RpcRecommend computes the best card for the tracked hand.
func RpcRecommend(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return dispatch(ctx, logger, nk, app.RequestRecommendation{})
}

// RpcFinalize resolves the current trick.
func RpcFinalize(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return dispatch(ctx, logger, nk, app.FinalizeRound{})
}

// RpcResetGame discards the caller's game.
func RpcResetGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return dispatch(ctx, logger, nk, app.Reset{})
}

// RpcGetState returns the caller's game without changing it.
func RpcGetState(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return dispatch(ctx, logger, nk, nil)
}

func decodePayload(payload string, v interface{}) error {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("invalid payload: "+err.Error(), codeInvalidArgument)
	}
	return nil
}

// dispatch loads the caller's session, applies action (nil only reads) and encodes the result.
func dispatch(ctx context.Context, logger runtime.Logger, nk storageModule, action app.Action) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user id required", codeUnauthenticated)
	}
	cfg := currentConfig()
	log := logger.WithField("user", userID)

	store := NewNakamaStorageStore(nk, cfg.Snapshot.Collection, userID)
	sess, err := app.OpenSession(ctx, app.NewService(nil, log), store, cfg.Snapshot.Slot, log)
	if err != nil {
		log.Error("Dispatch: failed to open session: %v", err)
		return "", runtime.NewError("failed to load game", codeInternal)
	}

	res := app.Result{Success: true}
	if action != nil {
		res = sess.Dispatch(ctx, action)
	}
	out, err := encodeResponse(newRPCResponse(res, sess.State()))
	if err != nil {
		log.Error("Dispatch: %v", err)
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return out, nil
}
