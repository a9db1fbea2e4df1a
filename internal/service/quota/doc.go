// Package quota implements the per-user daily send limit.
//
// Each (user, UTC calendar day) pair has at most one counter record. The
// check and the spend happen in a single atomic store operation (Reserve),
// so concurrent senders for the same user can never push the count past the
// limit. A send that fails after reserving hands its slot back with Release,
// which leaves the counter equal to the number of successful sends.
package quota
