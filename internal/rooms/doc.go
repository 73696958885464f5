// Package rooms orchestrates study-room operations over the api, crypto and
// state packages.
//
// Invariants the controller maintains:
//
//   - A cleartext room key exists in memory only inside a single CreateRoom
//     or AcceptJoinRequest call and is zeroed before the call returns.
//   - Only wrapped (RSA-encrypted, base64) keys cross the process boundary.
//   - Accepting a join request submits the membership row before the status
//     transition, so a partial failure never yields an accepted request whose
//     requester holds no key.
package rooms
