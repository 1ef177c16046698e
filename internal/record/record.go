package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Snapshot is the on-disk envelope around one serialized mapping. A backing
// file holds exactly one Snapshot.
type Snapshot struct {
	CRC         uint32 // Checksum of Codec + Payload
	Timestamp   int64  // Unix Timestamp in Nanoseconds
	CodecSize   uint32 // Length of Codec in Bytes
	PayloadSize uint32 // Length of Payload in Bytes
	Codec       []byte
	Payload     []byte
}

// CRC (4) + Timestamp (8) + CodecSize (4) + PayloadSize (4)
const SnapshotHeaderSizeBytes = 20

// Codec names are short identifiers; anything longer is a corrupt header.
const MaxCodecSizeBytes = 64

var (
	ErrTruncated    = errors.New("snapshot truncated")
	ErrBadHeader    = errors.New("invalid snapshot header")
	ErrChecksum     = errors.New("snapshot checksum mismatch")
	ErrTrailingData = errors.New("trailing data after snapshot")
	ErrTooLarge     = errors.New("snapshot section too large")
)

func CreateSnapshot(codec string, payload []byte) Snapshot {
	codecBytes := []byte(codec)

	return Snapshot{
		CRC:         CalculateCRC(codecBytes, payload),
		Timestamp:   time.Now().UnixNano(),
		CodecSize:   uint32(len(codecBytes)),
		PayloadSize: uint32(len(payload)),
		Codec:       codecBytes,
		Payload:     payload,
	}
}

// EncodeSnapshotToBytes refuses a snapshot whose sections do not fit the
// 32-bit size fields or disagree with them, since it would not decode.
func EncodeSnapshotToBytes(snapshot *Snapshot) ([]byte, error) {
	if err := checkSectionSize("codec", int64(len(snapshot.Codec)), snapshot.CodecSize); err != nil {
		return nil, err
	}
	if err := checkSectionSize("payload", int64(len(snapshot.Payload)), snapshot.PayloadSize); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	buf.Grow(SnapshotHeaderSizeBytes + len(snapshot.Codec) + len(snapshot.Payload))

	if err := binary.Write(buf, binary.LittleEndian, snapshot.CRC); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, snapshot.Timestamp); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, snapshot.CodecSize); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, snapshot.PayloadSize); err != nil {
		return nil, err
	}
	if _, err := buf.Write(snapshot.Codec); err != nil {
		return nil, err
	}
	if _, err := buf.Write(snapshot.Payload); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func checkSectionSize(section string, n int64, recorded uint32) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, section, n)
	}
	if uint32(n) != recorded {
		return fmt.Errorf("%w: %s is %d bytes, header says %d", ErrBadHeader, section, n, recorded)
	}
	return nil
}

// DecodeSnapshotFromBytes parses data as a single snapshot and verifies its
// checksum. Sizes in the header are checked against len(data) before any
// allocation.
func DecodeSnapshotFromBytes(data []byte) (*Snapshot, error) {
	var crc uint32
	var timestamp int64
	var codecSize uint32
	var payloadSize uint32

	if len(data) < SnapshotHeaderSizeBytes {
		return nil, fmt.Errorf("%w: %d header bytes", ErrTruncated, len(data))
	}

	buf := bytes.NewReader(data)

	if err := binary.Read(buf, binary.LittleEndian, &crc); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &timestamp); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &codecSize); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &payloadSize); err != nil {
		return nil, err
	}

	if codecSize == 0 || codecSize > MaxCodecSizeBytes {
		return nil, fmt.Errorf("%w: codec size %d", ErrBadHeader, codecSize)
	}

	body := uint64(codecSize) + uint64(payloadSize)
	remaining := uint64(len(data) - SnapshotHeaderSizeBytes)
	if body > remaining {
		return nil, fmt.Errorf("%w: want %d body bytes, have %d", ErrTruncated, body, remaining)
	}
	if body < remaining {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, remaining-body)
	}

	codec := make([]byte, codecSize)
	if _, err := io.ReadFull(buf, codec); err != nil {
		return nil, err
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(buf, payload); err != nil {
		return nil, err
	}

	if !ValidateCRC(codec, payload, crc) {
		return nil, ErrChecksum
	}

	return &Snapshot{
		CRC:         crc,
		Timestamp:   timestamp,
		CodecSize:   codecSize,
		PayloadSize: payloadSize,
		Codec:       codec,
		Payload:     payload,
	}, nil
}
