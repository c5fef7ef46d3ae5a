// Package fingerprint provides deterministic content hashing and version bookkeeping.
//
// Hash is order independent and sensitive to any field change. A version is the hash
// recorded for a named dataset at the moment it was last written to a derived store.
// Every cache refresh follows the same contract, implemented by Refresh: compute the
// fresh hash, compare with the stored version, skip the write when equal, otherwise
// overwrite the data and then the version.
//
// Versions can live in the cache (CacheVersionStore, "<name>:version"), in the
// relational store (DBVersionStore, table data_versions), or both (Chain).
package fingerprint
