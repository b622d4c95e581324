package yieldvote

// Checkpoint records that an account balance became Value at Height. A
// sequence of checkpoints for one account is strictly increasing in height
// and describes the balance as a step function of height.
type Checkpoint struct {
	Height int64
	Value  uint64
}
