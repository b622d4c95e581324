package cycle

import "github.com/iov-one/yieldvote/errors"

var (
	ErrNoVotes     = errors.Register(1300, "no votes in this cycle")
	ErrTooSoon     = errors.Register(1301, "cycle not finished")
	ErrYieldTooLow = errors.Register(1302, "yield too low")
	ErrNoProjects  = errors.Register(1303, "no active projects")
	ErrNotResolved = errors.Register(1304, "cycle cannot be resolved")
)
