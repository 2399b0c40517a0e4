package services

import (
	"encoding/json"
	"fmt"

	"github.com/corelend/command_audit_app/internal/apperrors"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
)

// jsonPayloadCodec serializes command payloads as JSON. Stored payloads are
// kept as the raw submitted bytes, so Encode(Decode(x)) round-trips exactly.
type jsonPayloadCodec struct{}

// NewJSONPayloadCodec creates the default payload codec.
func NewJSONPayloadCodec() portssvc.PayloadCodec {
	return &jsonPayloadCodec{}
}

var _ portssvc.PayloadCodec = (*jsonPayloadCodec)(nil)

func (c *jsonPayloadCodec) Encode(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode command payload: %v", apperrors.ErrValidation, err)
	}
	return data, nil
}

func (c *jsonPayloadCodec) Decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty command payload", apperrors.ErrValidation)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to decode command payload: %v", apperrors.ErrValidation, err)
	}
	return nil
}
