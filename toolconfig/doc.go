// Package toolconfig fetches the per-tool enabled/premium flags from the
// remote tool-configuration service.
//
// The service exposes GET /api/tools returning a JSON array of rows carrying
// at least "path" and "enabled", and optionally "premium" or "isPremium".
// Client sends the session credential, when one is available, as a bearer
// token.
//
// Client reports failures as errors (ErrUnexpectedStatus,
// ErrMalformedResponse, or the transport error). Callers that need to fail
// open, such as the registry builder, decide how to degrade.
package toolconfig
