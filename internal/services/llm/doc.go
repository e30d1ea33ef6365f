// Package llm provides an OpenRouter chat client for the review gate's
// collaborators: the rubric judge and the section auditor.
//
// # Requests
//
// CompleteJSON sends a system and user prompt with response_format
// json_object and returns the raw payload. Providers that answer through
// delta, legacy text, function or tool-call fields are tolerated.
//
// # Decoding
//
// DecodeLLMJSON strips code fences and leading prose before unmarshalling.
// Schema adds JSON-schema validation on top and tags every failure with
// services.ErrContract, which the gate treats as a fail-closed condition.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions and
// network timeouts with exponential backoff (base 1s, max 10s, up to 5
// attempts by default). Retry-After headers are honoured. Context
// cancellation aborts retries immediately.
//
// # Configuration
//
// Requires api_key and model, and optionally base_url, referer, title and
// timeout_seconds. HealthCheck verifies the key and model.
package llm
