package blob

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Load opens path and maps it read-only into memory with unix.Mmap (spec
// §6.1: "the host mmaps the blob"), then parses it. The returned closer
// unmaps it; callers must not use the returned *Blob's byte-backed
// strings after calling it (Parse already copies every string out of the
// mapped region, so in practice the *Blob remains valid - the closer
// exists to release the mapping itself).
func Load(path string) (*Blob, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, nil, fmt.Errorf("blob: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("blob: mmap %s: %w", path, err)
	}

	b, err := Parse(data)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, nil, err
	}

	closer := func() error { return unix.Munmap(data) }
	return b, closer, nil
}
