package request

import "encoding/json"

// BillingPaymentCreateRequest carries the raw provider payload for the
// "create payment for a ready job" route.
//
// `provider_payload` is kept as raw JSON to support varying provider schemas.

type BillingPaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
