//go:build !unix

package fileio

import "os"

func readMapped(f *os.File, _ int) (string, error) {
	return readAll(f)
}
