package yieldvote

import "fmt"

// Major, minor and patch numbers of the release.
const (
	Maj = 0
	Min = 1
	Fix = 0
)

// Suffix used when not a tagged release (eg. -dev, -alpha, -beta, etc)
const Suffix = "-dev"

// GitCommit set by build flags
var GitCommit = ""

// Version is the string to be displayed by binaries.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
