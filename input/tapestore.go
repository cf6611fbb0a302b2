package input

import (
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/quasilyte/gdata"
)

var tapeHandle codec.MsgpackHandle

// EncodeTape serializes a tape with the same msgpack codec the wire protocol
// uses.
func EncodeTape(data TapeData) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, &tapeHandle)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("encode tape %q: %w", data.Name, err)
	}
	return buf, nil
}

// DecodeTape deserializes a tape previously produced by EncodeTape.
func DecodeTape(raw []byte) (TapeData, error) {
	var data TapeData
	dec := codec.NewDecoderBytes(raw, &tapeHandle)
	if err := dec.Decode(&data); err != nil {
		return TapeData{}, fmt.Errorf("decode tape: %w", err)
	}
	return data, nil
}

// TapeStore persists input tapes in the platform's per-app data directory.
type TapeStore struct {
	m *gdata.Manager
}

// OpenTapeStore opens (creating if needed) the tape storage for appName.
func OpenTapeStore(appName string) (*TapeStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open tape store: %w", err)
	}
	return &TapeStore{m: m}, nil
}

func (s *TapeStore) itemKey(name string) string {
	return "tape_" + name
}

// Save writes a tape under its name, overwriting any previous recording.
func (s *TapeStore) Save(data TapeData) error {
	raw, err := EncodeTape(data)
	if err != nil {
		return err
	}
	if err := s.m.SaveItem(s.itemKey(data.Name), raw); err != nil {
		return fmt.Errorf("save tape %q: %w", data.Name, err)
	}
	return nil
}

// Load reads a tape by name. A missing tape is an error.
func (s *TapeStore) Load(name string) (TapeData, error) {
	raw, err := s.m.LoadItem(s.itemKey(name))
	if err != nil {
		return TapeData{}, fmt.Errorf("load tape %q: %w", name, err)
	}
	if len(raw) == 0 {
		return TapeData{}, fmt.Errorf("load tape %q: not found", name)
	}
	return DecodeTape(raw)
}
