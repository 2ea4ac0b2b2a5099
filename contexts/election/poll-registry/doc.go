// Package pollregistry implements the poll catalogue inside the election
// context.
//
// The module owns poll lifecycle (create/update/toggle/delete), the frozen
// eligible-voter snapshot taken at creation, and the per-voter poll feed
// derived from the placement rules in the eligibility package. Vote rows
// themselves live in the vote-ledger module and are reached only through
// ports.
package pollregistry
