// Package blob implements the configuration blob binary format (spec
// §6.1, §A.1): a little-endian, position-independent byte image the host
// mmaps directly, with every variable-length field addressed by a byte
// offset relative to the start of the blob rather than a pointer, so it
// remains meaningful regardless of where it ends up mapped.
package blob

const (
	magic = "ARCB"

	formatVersion = 1

	flagSignalWatch uint16 = 1 << 0
)

// headerFixedSize is the size, in bytes, of the header up to (but not
// including) the signal-watch-set array, whose length is itself part of
// the header.
const headerFixedSize = 4 + 2 + 2 + 4 // magic + version + flags + numSignals

// header is the decoded form of the blob's fixed preamble.
type header struct {
	version       uint16
	flags         uint16
	signals       []int32
	numLibraries  uint32
	numInterfaces uint32
	numSteps      uint32
	librariesOff  uint32
	interfacesOff uint32
	stepsOff      uint32
}

func (h header) hasSignalWatch() bool { return h.flags&flagSignalWatch != 0 }

// trailerSize is the size of the fixed portion of the header that follows
// the signal-watch array: three counts plus three table offsets.
const trailerSize = 4 + 4 + 4 + 4 + 4 + 4
