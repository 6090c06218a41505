// Package fileutil holds the permission modes of files written by apidesc.
package fileutil

import "os"

// DocumentMode is the mode of generated documents. They are meant to be
// committed alongside the code, so everyone may read them.
const DocumentMode os.FileMode = 0o644

// DirMode is the mode of created output directories.
const DirMode os.FileMode = 0o750
