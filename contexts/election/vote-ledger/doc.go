// Package voteledger implements the vote record of truth inside the
// election context.
//
// The module owns vote casting and the one-vote-per-voter-per-poll
// invariant, enforced by the storage layer's unique (poll, voter) key
// rather than by read-then-write checks. It also serves the tally,
// trend, and activity reads that analytics and the admin dashboard
// consume, and the cascade hooks the registry and catalogue call when
// voters or polls are removed.
package voteledger
