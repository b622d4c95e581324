/*
Package app exposes the distribution engine as a service.

Service owns the store and serializes all operations. Every mutation runs in
a savepoint: a cache wrap over the store that is written only when the whole
operation succeeds. A failed distribution or vote therefore never leaves
partial state behind.
*/
package app
