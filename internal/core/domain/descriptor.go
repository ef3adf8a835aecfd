package domain

import "strings"

const (
	wildcardMarker = "/*"
	depositMarker  = "/0/*"
	changeMarker   = "/1/*"
)

// DerivedDescriptors holds the deposit (branch 0) and change (branch 1)
// variants of a wildcard descriptor.
type DerivedDescriptors struct {
	Deposit string
	Change  string
}

// DeriveDescriptors rewrites the wildcard marker of the given descriptor
// into its deposit and change branches. It is a textual substitution: a
// descriptor without the marker is returned untouched in both branches and
// grammar errors only surface once a client is built from it.
func DeriveDescriptors(descriptor string) DerivedDescriptors {
	return DerivedDescriptors{
		Deposit: strings.ReplaceAll(descriptor, wildcardMarker, depositMarker),
		Change:  strings.ReplaceAll(descriptor, wildcardMarker, changeMarker),
	}
}
