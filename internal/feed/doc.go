// Package feed subscribes a room owner to their pending join requests.
//
// The stream is an initial REST snapshot followed by websocket insert events.
// The feed delivers at least once; the listener deduplicates by request id so
// downstream consumers see each request a single time. Connection drops are
// retried with doubling backoff capped at thirty seconds.
package feed
