// Package clients holds the Client model, the ordered in-memory cache that
// mirrors the server, and the Controller that drives the add, edit and
// delete flows.
//
// Data only flows one way into the cache: from server responses. The grid is
// a projection of the cache and is redrawn after every successful write.
//
// The Controller is owned by a single goroutine (the console loop or a
// one-shot command). None of the types in this package lock.
package clients
