package locusstats

import "bytes"

// Compression indicates how (and whether) an input table is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGZIP
	CompressionZStandard
)

var (
	magicGZIP      = []byte{0x1f, 0x8b}
	magicZStandard = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression inspects the first bytes of a stream. BGZF files are gzip
// streams and are reported as CompressionGZIP.
func DetectCompression(header []byte) Compression {
	if bytes.HasPrefix(header, magicZStandard) {
		return CompressionZStandard
	}
	if bytes.HasPrefix(header, magicGZIP) {
		return CompressionGZIP
	}

	return CompressionDisabled
}

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "CompressionDisabled"
	case CompressionGZIP:
		return "CompressionGZIP"
	case CompressionZStandard:
		return "CompressionZStandard"

	default:
		return "Illegal selection"
	}
}
