/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package keeps at most one configuration record, stored under a key
derived from the package name. Configuration owned by an address can be
changed only by that address, see Authorize.
*/
package gconf
