// Package events carries task change notifications from the service layer to
// connected real-time clients.
//
// Every mutation produces one ChangeEvent which is handed to a Notifier.
// Delivery is best-effort and at-most-once: the in-process Hub drops events
// for subscribers whose buffers are full, and nothing is replayed to clients
// that connect later.
//
// The primary components are:
//   - ChangeEvent: the {type, task|tasks|taskId} payload
//   - Hub: in-process fan-out to websocket subscribers
//   - RedisNotifier and Relay: share one event stream across server instances
package events
