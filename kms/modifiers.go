package kms

import "encoding/binary"

// formatModifierBlobHeaderSize mirrors struct drm_format_modifier_blob:
// version, flags, count_formats, formats_offset, count_modifiers,
// modifiers_offset — six little-endian uint32 fields.
const formatModifierBlobHeaderSize = 24

// formatModifierEntrySize mirrors struct drm_format_modifier: formats
// (u64 bitmask), offset (u32), pad (u32), modifier (u64).
const formatModifierEntrySize = 24

// DecodeFormatModifiers parses an IN_FORMATS property blob, returning
// the set of modifiers each format supports, per the
// drm_format_modifier_blob layout the kernel uses.
func DecodeFormatModifiers(blob []byte) (map[uint32][]uint64, error) {
	if len(blob) < formatModifierBlobHeaderSize {
		return nil, nil
	}

	countFormats := binary.LittleEndian.Uint32(blob[8:12])
	formatsOffset := binary.LittleEndian.Uint32(blob[12:16])
	countModifiers := binary.LittleEndian.Uint32(blob[16:20])
	modifiersOffset := binary.LittleEndian.Uint32(blob[20:24])

	formats := make([]uint32, 0, countFormats)
	for i := uint32(0); i < countFormats; i++ {
		off := formatsOffset + i*4
		if int(off)+4 > len(blob) {
			break
		}
		formats = append(formats, binary.LittleEndian.Uint32(blob[off:off+4]))
	}

	result := make(map[uint32][]uint64, len(formats))
	for i := uint32(0); i < countModifiers; i++ {
		off := modifiersOffset + i*formatModifierEntrySize
		if int(off)+formatModifierEntrySize > len(blob) {
			break
		}
		formatsMask := binary.LittleEndian.Uint64(blob[off : off+8])
		formatOffset := binary.LittleEndian.Uint32(blob[off+8 : off+12])
		modifier := binary.LittleEndian.Uint64(blob[off+16 : off+24])

		for bit := 0; bit < 64; bit++ {
			if formatsMask&(1<<uint(bit)) == 0 {
				continue
			}
			idx := int(formatOffset) + bit
			if idx < 0 || idx >= len(formats) {
				continue
			}
			f := formats[idx]
			result[f] = append(result[f], modifier)
		}
	}

	// Formats with no modifier entry still support FormatModLinear
	// implicitly (pre-modifier kernels / drivers that never populate
	// the table for a format).
	for _, f := range formats {
		if _, ok := result[f]; !ok {
			result[f] = []uint64{FormatModLinear}
		}
	}

	return result, nil
}
