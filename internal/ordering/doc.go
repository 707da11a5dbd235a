// Package ordering maintains the per-partition order index of tasks.
//
// A partition is the set of tasks sharing one (userId, category) pair. New
// tasks are appended after the current maximum of their partition. Bulk
// reorder requests are validated here but never renumbered: the client owns
// the ranking it submits.
package ordering
