//go:build !unix

package mmapfile

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("mmapfile: mmap not supported on this platform")

func mapFile(*os.File, int) ([]byte, error) {
	return nil, errNoMmap
}

func unmap([]byte) error {
	return nil
}
