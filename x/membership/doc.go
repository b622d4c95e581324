/*
Package membership manages the list of projects that receive distributions.

The active list never changes in the middle of a cycle, because vote vectors
and tally accumulators are aligned with it. Additions and removals are queued
instead and applied all at once by Commit, when a cycle closes.
*/
package membership
