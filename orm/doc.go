/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of record, addressed by a primary key.
Records are plain Go structs, serialized with go-amino, and validated before
they are written.
*/
package orm
