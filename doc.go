/*
Package yieldvote defines the interfaces and small types shared by all
extensions: storage, addresses, balance checkpoints and the context helpers
used to pass the current block height and logger down to every operation.

Extensions live under x/. Each one keeps its state in a KVStore provided by
the caller, so that the app layer can run an operation inside a cache wrap and
either write all of its changes or none of them.
*/
package yieldvote
