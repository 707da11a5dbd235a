// Package mocks provides shared test doubles for the store and events interfaces.
//
// Store mocks are built on testify/mock so tests can set expectations per call:
//
//	tasks := new(mocks.TaskStore)
//	tasks.On("MaxOrder", mock.Anything, "user-1", domain.CategoryToDo).Return(0, false, nil)
//
// RecordingNotifier is a hand-written fake that keeps every published event
// for later assertions.
package mocks
