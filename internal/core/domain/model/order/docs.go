// Package order implements the Order aggregate of the production workflow.
//
// An order is placed Open with one ledger line per product, approved once every raw-material
// requirement is covered by stock, moves to InProgress when the first job order is split off and
// closes as Completed when all of its job orders are terminal. Cancel is only legal before
// production starts.
//
// Ledger rules:
//   - pending starts equal to ordered and is decremented by job creation
//   - production credits recompute pending as max(0, ordered - produced)
//   - packed never exceeds produced
package order
