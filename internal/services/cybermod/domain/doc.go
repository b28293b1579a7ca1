// Package domain implements the cybermod rules: item classification, slot
// accounting, installation validation, check outcome resolution, overclock
// tracking, and skillware grants.
//
// Every function here is pure over normalized Actor and Item snapshots.
// Mutations are returned as patches for the caller to commit, one per
// document.
package domain
