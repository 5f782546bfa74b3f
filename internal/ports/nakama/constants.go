package nakama

// RPC ids registered with Nakama. Each maps to one session action, except RpcState which
// only reads.
const (
	RpcStart                 = "bisca_start"
	RpcRegisterPlay          = "bisca_register_play"
	RpcUpdateHand            = "bisca_update_hand"
	RpcRequestRecommendation = "bisca_request_recommendation"
	RpcFinalizeRound         = "bisca_finalize_round"
	RpcReset                 = "bisca_reset"
	RpcState                 = "bisca_state"
)

// ConfigPath is read at module init; missing files fall back to defaults.
const ConfigPath = "data/assistant_config.json"

// Nakama runtime error codes (gRPC status codes).
const (
	codeInvalidArgument = 3
	codeInternal        = 13
	codeUnauthenticated = 16
)
