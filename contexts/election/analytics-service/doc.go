// Package analytics implements the read-only reporting surface of the
// election context.
//
// The module owns the admin dashboard rollups (participation overview,
// year/department/section breakdowns, voting trends, poll activity) and
// the tabular exports. It holds no state of its own: every figure is
// derived on demand from the registry, catalogue, and ledger through
// read-only ports.
package analytics
