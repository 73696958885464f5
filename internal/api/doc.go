// Package api is the typed REST client for the MavPulse backend.
//
// A Client is constructed from an explicit Config and passed to whichever
// component needs it. Requests carry a bounded timeout; transport failures
// surface as errors.ErrNetworkFailure and non-2xx responses as
// errors.ErrServerRejection with the server's message attached.
package api
