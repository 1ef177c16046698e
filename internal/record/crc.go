package record

import "hash/crc32"

// CalculateCRC computes the CRC32 checksum of the codec name and payload using IEEE polynomial.
func CalculateCRC(codec, payload []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(codec)
	h.Write(payload)
	return h.Sum32()
}

// ValidateCRC returns true if the provided checksum matches the computed CRC32 of the snapshot body
func ValidateCRC(codec, payload []byte, checksum uint32) bool {
	return CalculateCRC(codec, payload) == checksum
}
