//go:build !windows

package rt

import (
	"os"
	"syscall"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// mapFile maps the whole of path read-only. The mapping length is fixed at
// call time; a writer growing the file afterwards does not extend it.
func mapFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewTracer(errors.MmapOpenError).Wrap(err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.NewTracer(errors.MmapOpenError).Wrap(err)
	}
	if st.Size() == 0 {
		return nil, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(st.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, errors.NewTracer(errors.MmapMapError).Wrap(err)
	}
	return data, nil
}

// unmapFile releases a mapping created by mapFile.
func unmapFile(data []byte) error {
	if data == nil {
		return nil
	}
	return syscall.Munmap(data)
}
