package fontkit

import (
	"bytes"
	"sync"
)

// bufferKind classifies a font buffer by its magic bytes.
type bufferKind uint8

const (
	kindUnknown bufferKind = iota
	kindTTF
	kindOTF
	kindTTC
	kindWOFF
	kindWOFF2
)

func (k bufferKind) String() string {
	switch k {
	case kindTTF:
		return "ttf"
	case kindOTF:
		return "otf"
	case kindTTC:
		return "ttc"
	case kindWOFF:
		return "woff"
	case kindWOFF2:
		return "woff2"
	default:
		return "unknown"
	}
}

// sniffBuffer inspects the first bytes of a font buffer.
func sniffBuffer(data []byte) bufferKind {
	if len(data) < 5 {
		return kindUnknown
	}
	switch {
	case bytes.HasPrefix(data, []byte("wOF2")):
		return kindWOFF2
	case bytes.HasPrefix(data, []byte("wOFF")):
		return kindWOFF
	case bytes.HasPrefix(data, []byte("ttcf")):
		return kindTTC
	case bytes.HasPrefix(data, []byte("OTTO")) && data[4] == 0:
		return kindOTF
	case bytes.HasPrefix(data, []byte{0x00, 0x01, 0x00, 0x00}) && data[4] == 0:
		return kindTTF
	case bytes.HasPrefix(data, []byte("true")):
		return kindTTF
	default:
		return kindUnknown
	}
}

// ContainerDecoder unpacks a compressed font container (WOFF, WOFF2) into
// raw sfnt bytes.
type ContainerDecoder func(data []byte) ([]byte, error)

var (
	decoderMu sync.RWMutex
	decoders  = map[string]ContainerDecoder{}
)

// RegisterContainerDecoder installs a decoder for a container kind, either
// "woff" or "woff2". No decoder is built in; without one, adding a
// compressed buffer fails with UnsupportedContainerError.
func RegisterContainerDecoder(kind string, dec ContainerDecoder) {
	decoderMu.Lock()
	defer decoderMu.Unlock()
	decoders[kind] = dec
}

// normalizeBuffer sniffs a buffer and unpacks containers, returning raw
// sfnt bytes ready for parsing.
func normalizeBuffer(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	kind := sniffBuffer(data)
	switch kind {
	case kindTTF, kindOTF, kindTTC:
		return data, nil
	case kindWOFF, kindWOFF2:
		decoderMu.RLock()
		dec := decoders[kind.String()]
		decoderMu.RUnlock()
		if dec == nil {
			return nil, &UnsupportedContainerError{Kind: kind.String()}
		}
		return dec(data)
	default:
		return nil, ErrUnrecognizedBuffer
	}
}
