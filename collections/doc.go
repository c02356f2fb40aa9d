// Package collections
// Author: momentics <momentics@gmail.com>
//
// Thread-safe containers sharing one design: each instance owns exactly one
// api.Locker (blocking or spin, chosen per instance), every public operation
// takes it for its whole critical section, and no operation ever holds two
// containers' locks. Operations that cannot take the lock within their
// timeout report failure and leave the container untouched.
//
// Non-try operations wait for the acquire timeout (infinite by default);
// try-variants wait for the try timeout (four seconds by default). Both are
// options. Enumeration is either snapshot based (Map.ForEach, Set.ForEach,
// Keys, Values, ToSlice) or holds the lock for the whole walk
// (Map.ForEachValue, Stack.ForEach, Queue.ForEach, Vector.ForEach); callbacks
// of the latter must not call back into the same container.
//
// Dispose is outside the concurrency contract: call it once, after every
// other goroutine is done with the container.
package collections
