// Package api handles incoming HTTP requests, request decoding and response
// formatting for the task board. Handlers translate HTTP concerns into
// TaskService and UserService calls and stream change events to websocket
// clients.
package api
