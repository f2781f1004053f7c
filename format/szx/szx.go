// Package szx reads and writes the ZX Spectrum snapshot format (SZX): a
// 8-byte header followed by a sequence of length-prefixed, four-character
// tagged blocks. Unlike this tree's own BSON-like reflect/config
// serialisation, SZX is an external, bit-exact wire format with a fixed
// header layout and a published block catalogue, so it gets its own
// reader/writer rather than riding on the reflection layer.
package szx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const magic = "ZXST"

// Header is the fixed 8-byte SZX file header.
type Header struct {
	MajorVersion uint8
	MinorVersion uint8
	MachineID    uint8
	Flags        uint8
}

// machine ids, as published in the SZX specification.
const (
	Machine48K       = 0
	Machine48KNTSC   = 1
	Machine128K      = 2
	MachinePlus2     = 3
	MachinePlus2A    = 4
	MachinePlus3     = 5
	MachinePlus3E    = 6
	MachineSE        = 7
	MachineTS2048    = 8
	MachinePentagon  = 9
	MachineScorpion  = 10
	MachineSpectrumSE = 11
)

// Block is one decoded, still-opaque chunk of the file: a four-character
// tag plus its raw payload. Recognised tags are decoded further by
// DecodeZ80Registers/DecodeBorder/DecodeRAMPage/DecodeAY; anything else is
// passed through untouched so a round-trip preserves unknown extensions.
type Block struct {
	Tag  [4]byte
	Data []byte
}

// Document is a fully parsed SZX file.
type Document struct {
	Header Header
	Blocks []Block
}

// Read parses an SZX document from r.
func Read(r io.Reader) (*Document, error) {
	var raw [8]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("szx: reading header: %w", err)
	}
	if string(raw[0:4]) != magic {
		return nil, fmt.Errorf("szx: bad magic %q", raw[0:4])
	}

	doc := &Document{
		Header: Header{
			MajorVersion: raw[4],
			MinorVersion: raw[5],
			MachineID:    raw[6],
			Flags:        raw[7],
		},
	}

	for {
		var tag [4]byte
		if _, err := io.ReadFull(r, tag[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("szx: reading block tag: %w", err)
		}

		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("szx: reading block length: %w", err)
		}

		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("szx: reading block %q payload: %w", tag, err)
		}

		doc.Blocks = append(doc.Blocks, Block{Tag: tag, Data: payload})
	}

	return doc, nil
}

// Write serialises a Document back to its wire format.
func Write(w io.Writer, doc *Document) error {
	header := []byte{magic[0], magic[1], magic[2], magic[3], doc.Header.MajorVersion, doc.Header.MinorVersion, doc.Header.MachineID, doc.Header.Flags}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("szx: writing header: %w", err)
	}

	for _, b := range doc.Blocks {
		if _, err := w.Write(b.Tag[:]); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(b.Data))); err != nil {
			return err
		}
		if _, err := w.Write(b.Data); err != nil {
			return err
		}
	}
	return nil
}

// Z80Registers decodes a "Z80R" block.
type Z80Registers struct {
	AF, BC, DE, HL     uint16
	AFDash, BCDash, DEDash, HLDash uint16
	IX, IY             uint16
	SP, PC             uint16
	I                  uint8
	R                  uint8
	IFF1, IFF2         uint8
	IM                 uint8
}

// DecodeZ80Registers decodes the payload of a "Z80R" block.
func DecodeZ80Registers(data []byte) (Z80Registers, error) {
	var z Z80Registers
	r := bytes.NewReader(data)
	fields := []*uint16{&z.AF, &z.BC, &z.DE, &z.HL, &z.AFDash, &z.BCDash, &z.DEDash, &z.HLDash, &z.IX, &z.IY, &z.SP, &z.PC}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return z, fmt.Errorf("szx: decoding Z80R: %w", err)
		}
	}
	var rest [7]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return z, fmt.Errorf("szx: decoding Z80R tail: %w", err)
	}
	z.I, z.R, z.IFF1, z.IFF2, z.IM = rest[0], rest[1], rest[3], rest[4], rest[5]
	return z, nil
}

// BorderPaging decodes an "SPCR" block: border colour and 128K paging
// registers.
type BorderPaging struct {
	Border     uint8
	Port7FFD   uint8
	Port1FFD   uint8
}

// DecodeBorder decodes the payload of an "SPCR" block.
func DecodeBorder(data []byte) (BorderPaging, error) {
	if len(data) < 3 {
		return BorderPaging{}, fmt.Errorf("szx: SPCR block too short")
	}
	return BorderPaging{Border: data[0], Port7FFD: data[1], Port1FFD: data[2]}, nil
}

// RAMPage decodes a "RAMP" block: one 16KB memory page, optionally
// zlib-compressed.
type RAMPage struct {
	PageID int
	Data   [16384]byte
}

const ramCompressedFlag = 0x01

// DecodeRAMPage decodes the payload of a "RAMP" block, inflating it with
// zlib if the compression flag is set. SZX's own specification mandates
// zlib (not a bespoke scheme) for compressed pages, which is the same
// algorithm this tree's disk/tape image handling reaches for elsewhere, so
// both paths share the same decompressor.
func DecodeRAMPage(data []byte) (RAMPage, error) {
	if len(data) < 3 {
		return RAMPage{}, fmt.Errorf("szx: RAMP block too short")
	}

	flags := binary.LittleEndian.Uint16(data[0:2])
	pageID := int(data[2])
	payload := data[3:]

	var page RAMPage
	page.PageID = pageID

	if flags&ramCompressedFlag != 0 {
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return page, fmt.Errorf("szx: inflating RAMP: %w", err)
		}
		defer zr.Close()
		n, err := io.ReadFull(zr, page.Data[:])
		if err != nil && err != io.ErrUnexpectedEOF {
			return page, fmt.Errorf("szx: inflating RAMP (read %d bytes): %w", n, err)
		}
		return page, nil
	}

	copy(page.Data[:], payload)
	return page, nil
}

// AYState decodes an "AY\0\0" block: the AY-3-8910 sound chip's 16
// register file plus the currently selected register index.
type AYState struct {
	CurrentRegister uint8
	Registers       [16]uint8
}

// DecodeAY decodes the payload of an "AY\0\0" block.
func DecodeAY(data []byte) (AYState, error) {
	var a AYState
	if len(data) < 1+16 {
		return a, fmt.Errorf("szx: AY block too short")
	}
	a.CurrentRegister = data[0]
	copy(a.Registers[:], data[1:17])
	return a, nil
}
