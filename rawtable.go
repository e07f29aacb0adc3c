package fontkit

import (
	"encoding/binary"
	"fmt"
	"sort"

	"golang.org/x/text/encoding/unicode"
)

// Raw sfnt table access. The high-level backends expose glyph metrics, but
// several tables they do not surface (OS/2 aspect, fvar, kern) are read
// directly from the buffer here with encoding/binary.

var be = binary.BigEndian

// sfntDirectory returns the table directory of face faceIndex as a map
// from tag to table bytes. Handles both plain sfnt buffers and ttcf
// collections.
func sfntDirectory(data []byte, faceIndex int) (map[string][]byte, error) {
	offset := 0
	if sniffBuffer(data) == kindTTC {
		if len(data) < 12 {
			return nil, ErrUnrecognizedBuffer
		}
		numFonts := int(be.Uint32(data[8:]))
		if faceIndex < 0 || faceIndex >= numFonts {
			return nil, fmt.Errorf("fontkit: face index %d out of range (collection has %d)", faceIndex, numFonts)
		}
		pos := 12 + 4*faceIndex
		if len(data) < pos+4 {
			return nil, ErrUnrecognizedBuffer
		}
		offset = int(be.Uint32(data[pos:]))
	} else if faceIndex != 0 {
		return nil, fmt.Errorf("fontkit: face index %d out of range (buffer has 1 face)", faceIndex)
	}

	if len(data) < offset+12 {
		return nil, ErrUnrecognizedBuffer
	}
	numTables := int(be.Uint16(data[offset+4:]))
	recEnd := offset + 12 + 16*numTables
	if len(data) < recEnd {
		return nil, ErrUnrecognizedBuffer
	}

	tables := make(map[string][]byte, numTables)
	for i := 0; i < numTables; i++ {
		rec := data[offset+12+16*i:]
		tag := string(rec[:4])
		tabOff := int(be.Uint32(rec[8:]))
		tabLen := int(be.Uint32(rec[12:]))
		if tabOff < 0 || tabLen < 0 || tabOff+tabLen > len(data) {
			continue
		}
		tables[tag] = data[tabOff : tabOff+tabLen]
	}
	return tables, nil
}

var utf16Decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

// parseNameTable decodes the records of a raw name table. Unicode and
// Windows BMP records are decoded as UTF-16BE, Macintosh Roman records as
// single bytes. Other encodings are skipped.
func parseNameTable(raw []byte) []Name {
	if len(raw) < 6 {
		return nil
	}
	count := int(be.Uint16(raw[2:]))
	storage := int(be.Uint16(raw[4:]))
	names := make([]Name, 0, count)
	for i := 0; i < count; i++ {
		rec := 6 + 12*i
		if len(raw) < rec+12 {
			break
		}
		platformID := be.Uint16(raw[rec:])
		encodingID := be.Uint16(raw[rec+2:])
		languageID := be.Uint16(raw[rec+4:])
		nameID := be.Uint16(raw[rec+6:])
		length := int(be.Uint16(raw[rec+8:]))
		off := storage + int(be.Uint16(raw[rec+10:]))
		if off+length > len(raw) {
			continue
		}
		payload := raw[off : off+length]

		var text string
		switch {
		case platformID == 0, platformID == 3 && (encodingID == 1 || encodingID == 10):
			decoded, err := utf16Decoder.Bytes(payload)
			if err != nil {
				continue
			}
			text = string(decoded)
		case platformID == 1 && encodingID == 0:
			runes := make([]rune, len(payload))
			for j, b := range payload {
				runes[j] = rune(b)
			}
			text = string(runes)
		default:
			continue
		}
		if text == "" {
			continue
		}
		names = append(names, Name{ID: nameID, Text: text, LanguageID: languageID})
	}
	return names
}

// parseOS2Aspect reads usWeightClass, usWidthClass and the italic bit of
// fsSelection from a raw OS/2 table.
func parseOS2Aspect(raw []byte) (weight, stretch uint16, italic bool, ok bool) {
	if len(raw) < 64 {
		return 0, 0, false, false
	}
	weight = be.Uint16(raw[4:])
	stretch = be.Uint16(raw[6:])
	italic = be.Uint16(raw[62:])&0x01 != 0
	return weight, stretch, italic, true
}

func fixedToFloat(v uint32) float32 {
	return float32(int32(v)) / 65536
}

// parseFvar reads the axes and named instances of a raw fvar table.
func parseFvar(raw []byte) (axes []VariationAxis, instances []NamedInstance) {
	if len(raw) < 16 {
		return nil, nil
	}
	axesOffset := int(be.Uint16(raw[4:]))
	axisCount := int(be.Uint16(raw[8:]))
	axisSize := int(be.Uint16(raw[10:]))
	instanceCount := int(be.Uint16(raw[12:]))
	instanceSize := int(be.Uint16(raw[14:]))
	if axisSize < 20 || axesOffset+axisCount*axisSize > len(raw) {
		return nil, nil
	}

	axes = make([]VariationAxis, 0, axisCount)
	for i := 0; i < axisCount; i++ {
		rec := raw[axesOffset+i*axisSize:]
		axes = append(axes, VariationAxis{
			Tag:     string(rec[:4]),
			Min:     fixedToFloat(be.Uint32(rec[4:])),
			Default: fixedToFloat(be.Uint32(rec[8:])),
			Max:     fixedToFloat(be.Uint32(rec[12:])),
		})
	}

	// Instances follow the axis array. A postscript name ID is present
	// only when the record size says so.
	instBase := axesOffset + axisCount*axisSize
	hasPostScript := instanceSize >= axisCount*4+6
	if instanceSize < axisCount*4+4 || instBase+instanceCount*instanceSize > len(raw) {
		return axes, nil
	}
	instances = make([]NamedInstance, 0, instanceCount)
	for i := 0; i < instanceCount; i++ {
		rec := raw[instBase+i*instanceSize:]
		inst := NamedInstance{
			SubfamilyNameID: be.Uint16(rec[:2]),
			Coords:          make([]float32, axisCount),
		}
		for a := 0; a < axisCount; a++ {
			inst.Coords[a] = fixedToFloat(be.Uint32(rec[4+4*a:]))
		}
		if hasPostScript {
			inst.PostScriptNameID = be.Uint16(rec[4+4*axisCount:])
		}
		instances = append(instances, inst)
	}
	return axes, instances
}

// kernPairs is a format 0 kern subtable: a sorted array of
// (left, right, value) pairs searched by binary search.
type kernPairs struct {
	horizontal bool
	variable   bool
	pairs      []byte // 6 bytes per pair, big-endian
}

func (k *kernPairs) Horizontal() bool { return k.horizontal }
func (k *kernPairs) Variable() bool   { return k.variable }

func (k *kernPairs) Lookup(left, right GlyphID) (int16, bool) {
	want := uint32(left)<<16 | uint32(right)
	n := len(k.pairs) / 6
	i := sort.Search(n, func(i int) bool {
		return be.Uint32(k.pairs[i*6:]) >= want
	})
	if i < n && be.Uint32(k.pairs[i*6:]) == want {
		return int16(be.Uint16(k.pairs[i*6+4:])), true
	}
	return 0, false
}

// parseKern reads the format 0 subtables of a raw kern table. Both the
// Microsoft (version 0) and Apple (version 1.0) headers are understood;
// other subtable formats are skipped.
func parseKern(raw []byte) []KernSubtable {
	if len(raw) < 4 {
		return nil
	}
	var subs []KernSubtable

	if be.Uint16(raw) == 0 {
		// Microsoft header: uint16 version, uint16 nTables.
		n := int(be.Uint16(raw[2:]))
		pos := 4
		for i := 0; i < n && pos+6 <= len(raw); i++ {
			length := int(be.Uint16(raw[pos+2:]))
			coverage := be.Uint16(raw[pos+4:])
			if length < 6 || pos+length > len(raw) {
				break
			}
			if coverage>>8 == 0 { // format 0
				subs = append(subs, newKernPairs(raw[pos+6:pos+length], coverage&0x01 != 0, false))
			}
			pos += length
		}
		return subs
	}

	if be.Uint32(raw) == 0x00010000 && len(raw) >= 8 {
		// Apple header: uint32 version, uint32 nTables.
		n := int(be.Uint32(raw[4:]))
		pos := 8
		for i := 0; i < n && pos+8 <= len(raw); i++ {
			length := int(be.Uint32(raw[pos:]))
			coverage := be.Uint16(raw[pos+4:])
			if length < 8 || pos+length > len(raw) {
				break
			}
			if coverage&0x00FF == 0 { // format 0
				horizontal := coverage&0x8000 == 0
				variable := coverage&0x2000 != 0
				subs = append(subs, newKernPairs(raw[pos+8:pos+length], horizontal, variable))
			}
			pos += length
		}
	}
	return subs
}

// newKernPairs wraps a format 0 payload (nPairs, search header, pairs).
func newKernPairs(payload []byte, horizontal, variable bool) *kernPairs {
	if len(payload) < 8 {
		return &kernPairs{horizontal: horizontal, variable: variable}
	}
	n := int(be.Uint16(payload))
	pairs := payload[8:]
	if len(pairs) > n*6 {
		pairs = pairs[:n*6]
	}
	pairs = pairs[:len(pairs)/6*6]
	return &kernPairs{horizontal: horizontal, variable: variable, pairs: pairs}
}
