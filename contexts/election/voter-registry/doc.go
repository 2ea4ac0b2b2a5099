// Package voterregistry owns voter records inside the election context.
//
// The module covers single and bulk voter creation with all-or-nothing
// validation, roster row ingestion, filtered queries and dashboard
// grouping, bulk admin actions (credential delivery, password resets,
// vote-flag maintenance, cascading deletes), and group deletion via a
// structured group key. Business rules live in application/domain layers;
// storage and mail delivery sit behind ports and adapters.
package voterregistry
