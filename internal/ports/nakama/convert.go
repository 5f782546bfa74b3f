package nakama

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"bisca/internal/app"
	"bisca/internal/domain"
)

// rpcResponse is the payload returned by every RPC.
type rpcResponse struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message,omitempty"`
	Error          string                 `json:"error,omitempty"`
	Kind           app.ErrorKind          `json:"kind,omitempty"`
	PersistError   string                 `json:"persistError,omitempty"`
	State          *domain.GameState      `json:"state"`
	Scorecard      domain.Scorecard       `json:"scorecard"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
}

func newRPCResponse(res app.Result, state *domain.GameState) rpcResponse {
	return rpcResponse{
		Success:        res.Success,
		Message:        res.Message,
		Error:          res.Error,
		Kind:           res.Kind,
		PersistError:   res.PersistError,
		State:          state,
		Scorecard:      domain.BuildScorecard(state),
		Recommendation: state.Recommendation,
	}
}

// encodeResponse renders the response as a protobuf Struct in JSON form so clients get the
// same encoding as match labels.
func encodeResponse(resp rpcResponse) (string, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return "", fmt.Errorf("failed to build response struct: %w", err)
	}
	out, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(out), nil
}

// parseCards parses card strings such as "A♥" or "7S".
func parseCards(in []string) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(in))
	for _, s := range in {
		c, err := domain.ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
