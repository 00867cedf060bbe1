package store

import (
	"encoding/hex"
	"path/filepath"
)

// UserPaths names the encrypted files of one user inside the data
// directory. Usernames are hex-encoded so any valid username maps to a
// safe file name.
type UserPaths struct {
	Items string
	Tags  string
}

// PathsFor returns the container paths of username under dataDir.
func PathsFor(dataDir, username string) UserPaths {
	base := filepath.Join(dataDir, hex.EncodeToString([]byte(username)))
	return UserPaths{
		Items: base + ".items",
		Tags:  base + ".tags",
	}
}
