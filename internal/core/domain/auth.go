package domain

import "strings"

// Credentials are the user/password pair embedded in a full node address.
// The zero value means no authentication.
type Credentials struct {
	Username string
	Password string
}

// IsEmpty returns whether no credentials were provided.
func (c Credentials) IsEmpty() bool {
	return c.Username == "" && c.Password == ""
}

// ParseAuth splits a full node address of the form base?auth=user:pass
// into its base URL and credentials. An empty auth segment yields empty
// credentials. Otherwise the username must not be empty and the password
// is everything after the first colon, possibly nothing.
func ParseAuth(address string) (string, Credentials, error) {
	parts := strings.Split(address, authDelimiter)
	if len(parts) != 2 {
		return "", Credentials{}, ErrMissingAuthSegment
	}
	baseURL, segment := parts[0], parts[1]
	if segment == "" {
		return baseURL, Credentials{}, nil
	}

	userPass := strings.SplitN(segment, ":", 2)
	if len(userPass) != 2 || userPass[0] == "" {
		return "", Credentials{}, ErrMalformedAuthSegment
	}
	return baseURL, Credentials{userPass[0], userPass[1]}, nil
}
