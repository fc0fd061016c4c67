// Package catalog holds named S-box tables: published cipher S-boxes and the
// round functions of their Feistel decompositions.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Davincible/sboxkit/pkg/sbox"
)

// scream is the 8-bit S-box of the Scream authenticated cipher.
var scream = []uint64{
	0x20, 0x8d, 0xb2, 0xda, 0x33, 0x35, 0xa6, 0xff, 0x7a, 0x52, 0x6a, 0xc6, 0xa4, 0xa8, 0x51, 0x23,
	0xa2, 0x96, 0x30, 0xab, 0xc8, 0x17, 0x14, 0x9e, 0xe8, 0xf3, 0xf8, 0xdd, 0x85, 0xe2, 0x4b, 0xd8,
	0x6c, 0x01, 0x0e, 0x3d, 0xb6, 0x39, 0x4a, 0x83, 0x6f, 0xaa, 0x86, 0x6e, 0x68, 0x40, 0x98, 0x5f,
	0x37, 0x13, 0x05, 0x87, 0x04, 0x82, 0x31, 0x89, 0x24, 0x38, 0x9d, 0x54, 0x22, 0x7b, 0x63, 0xbd,
	0x75, 0x2c, 0x47, 0xe9, 0xc2, 0x60, 0x43, 0xac, 0x57, 0xa1, 0x1f, 0x27, 0xe7, 0xad, 0x5c, 0xd2,
	0x0f, 0x77, 0xfd, 0x08, 0x79, 0x3a, 0x49, 0x5d, 0xed, 0x90, 0x65, 0x7c, 0x56, 0x4f, 0x2e, 0x69,
	0xcd, 0x44, 0x3f, 0x62, 0x5b, 0x88, 0x6b, 0xc4, 0x5e, 0x2d, 0x67, 0x0b, 0x9f, 0x21, 0x29, 0x2a,
	0xd6, 0x7e, 0x74, 0xe0, 0x41, 0x73, 0x50, 0x76, 0x55, 0x97, 0x3c, 0x09, 0x7d, 0x5a, 0x92, 0x70,
	0x84, 0xb9, 0x26, 0x34, 0x1d, 0x81, 0x32, 0x2b, 0x36, 0x64, 0xae, 0xc0, 0x00, 0xee, 0x8f, 0xa7,
	0xbe, 0x58, 0xdc, 0x7f, 0xec, 0x9b, 0x78, 0x10, 0xcc, 0x2f, 0x94, 0xf1, 0x3b, 0x9c, 0x6d, 0x16,
	0x48, 0xb5, 0xca, 0x11, 0xfa, 0x0d, 0x8e, 0x07, 0xb1, 0x0c, 0x12, 0x28, 0x4c, 0x46, 0xf4, 0x8b,
	0xa9, 0xcf, 0xbb, 0x03, 0xa0, 0xfc, 0xef, 0x25, 0x80, 0xf6, 0xb3, 0xba, 0x3e, 0xf7, 0xd5, 0x91,
	0xc3, 0x8a, 0xc1, 0x45, 0xde, 0x66, 0xf5, 0x0a, 0xc9, 0x15, 0xd9, 0xa3, 0x61, 0x99, 0xb0, 0xe4,
	0xd1, 0xfb, 0xd3, 0x4e, 0xbf, 0xd4, 0xd7, 0x71, 0xcb, 0x1e, 0xdb, 0x02, 0x1a, 0x93, 0xea, 0xc5,
	0xeb, 0x72, 0xf9, 0x1c, 0xe5, 0xce, 0x4d, 0xf2, 0x42, 0x19, 0xe1, 0xdf, 0x59, 0x95, 0xb7, 0x8c,
	0x9a, 0xf0, 0x18, 0xe6, 0xc7, 0xaf, 0xbc, 0xb8, 0xe3, 0x1b, 0xd0, 0xa5, 0x53, 0xb4, 0x06, 0xfe,
}

// iscream is the 8-bit S-box of iScream. It is an involution.
var iscream = []uint64{
	0x00, 0x85, 0x65, 0xd2, 0x5b, 0xff, 0x7a, 0xce, 0x4d, 0xe2, 0x2c, 0x36, 0x92, 0x15, 0xbd, 0xad,
	0x57, 0xf3, 0x37, 0x2d, 0x88, 0x0d, 0xac, 0xbc, 0x18, 0x9f, 0x7e, 0xca, 0x41, 0xee, 0x61, 0xd6,
	0x59, 0xec, 0x78, 0xd4, 0x47, 0xf9, 0x26, 0xa3, 0x90, 0x8b, 0xbf, 0x30, 0x0a, 0x13, 0x6f, 0xc0,
	0x2b, 0xae, 0x91, 0x8a, 0xd8, 0x74, 0x0b, 0x12, 0xcc, 0x63, 0xfd, 0x43, 0xb2, 0x3d, 0xe8, 0x5d,
	0xb6, 0x1c, 0x83, 0x3b, 0xc8, 0x45, 0x9d, 0x24, 0x52, 0xdd, 0xe4, 0xf4, 0xab, 0x08, 0x77, 0x6d,
	0xf5, 0xe5, 0x48, 0xc5, 0x6c, 0x76, 0xba, 0x10, 0x99, 0x20, 0xa7, 0x04, 0x87, 0x3f, 0xd0, 0x5f,
	0xa5, 0x1e, 0x9b, 0x39, 0xb0, 0x02, 0xea, 0x67, 0xc6, 0xdf, 0x71, 0xf6, 0x54, 0x4f, 0x8d, 0x2e,
	0xe7, 0x6a, 0xc7, 0xde, 0x35, 0x97, 0x55, 0x4e, 0x22, 0x81, 0x06, 0xb4, 0x7c, 0xfb, 0x1a, 0xa1,
	0xd5, 0x79, 0xfc, 0x42, 0x84, 0x01, 0xe9, 0x5c, 0x14, 0x93, 0x33, 0x29, 0xc1, 0x6e, 0xa8, 0xb8,
	0x28, 0x32, 0x0c, 0x89, 0xb9, 0xa9, 0xd9, 0x75, 0xed, 0x58, 0xcd, 0x62, 0xf8, 0x46, 0x9e, 0x19,
	0xcb, 0x7f, 0xa2, 0x27, 0xd7, 0x60, 0xfe, 0x5a, 0x8e, 0x95, 0xe3, 0x4c, 0x16, 0x0f, 0x31, 0xbe,
	0x64, 0xd3, 0x3c, 0xb3, 0x7b, 0xcf, 0x40, 0xef, 0x8f, 0x94, 0x56, 0xf2, 0x17, 0x0e, 0xaf, 0x2a,
	0x2f, 0x8c, 0xf1, 0xe1, 0xdc, 0x53, 0x68, 0x72, 0x44, 0xc9, 0x1b, 0xa0, 0x38, 0x9a, 0x07, 0xb5,
	0x5e, 0xd1, 0x03, 0xb1, 0x23, 0x80, 0x1f, 0xa4, 0x34, 0x96, 0xe0, 0xf0, 0xc4, 0x49, 0x73, 0x69,
	0xda, 0xc3, 0x09, 0xaa, 0x4a, 0x51, 0xf7, 0x70, 0x3e, 0x86, 0x66, 0xeb, 0x21, 0x98, 0x1d, 0xb7,
	0xdb, 0xc2, 0xbb, 0x11, 0x4b, 0x50, 0x6b, 0xe6, 0x9c, 0x25, 0xfa, 0x7d, 0x82, 0x3a, 0xa6, 0x05,
}

// skinny4 is the 4-bit S-box of SKINNY-64.
var skinny4 = []uint64{0xc, 0x6, 0x9, 0x0, 0x1, 0xa, 0x2, 0xb, 0x3, 0x8, 0x5, 0xd, 0x4, 0xe, 0x7, 0xf}

// Round functions. f1, f2, f3 decompose Scream as a 3-round Feistel
// network, f4 decomposes iScream; f5 and f6 are the remaining entries of
// the property table.
var (
	f1 = []uint64{0x0, 0x2, 0x0, 0xb, 0x3, 0x0, 0x0, 0xa, 0x1, 0xe, 0x0, 0x6, 0xa, 0x4, 0x5, 0x2}
	f2 = []uint64{0x0, 0x2, 0xc, 0x7, 0x5, 0xf, 0xd, 0x6, 0x4, 0xe, 0x8, 0x9, 0x3, 0x1, 0xb, 0xa}
	f3 = []uint64{0x2, 0x0, 0xb, 0x0, 0x0, 0x3, 0xa, 0x0, 0xe, 0x1, 0x6, 0x0, 0x4, 0xa, 0x2, 0x5}
	f4 = []uint64{0x0, 0x8, 0x6, 0xd, 0x5, 0xf, 0x7, 0xc, 0x4, 0xe, 0x2, 0x3, 0x9, 0x1, 0xb, 0xa}
	f5 = []uint64{0xc, 0x5, 0xa, 0x2, 0x5, 0x5, 0x7, 0x6, 0x5, 0xb, 0x0, 0xf, 0x4, 0x3, 0x5, 0x3}
	f6 = []uint64{0x3, 0x1, 0x9, 0x0, 0x6, 0x7, 0x8, 0x2, 0x9, 0x6, 0xd, 0x9, 0x9, 0x5, 0x9, 0xe}
)

type entry struct {
	lut        []uint64
	inputBits  int
	outputBits int
}

var entries = map[string]entry{
	"iscream": {iscream, 8, 8},
	"scream":  {scream, 8, 8},
	"skinny4": {skinny4, 4, 4},
	"f1":      {f1, 4, 4},
	"f2":      {f2, 4, 4},
	"f3":      {f3, 4, 4},
	"f4":      {f4, 4, 4},
	"f5":      {f5, 4, 4},
	"f6":      {f6, 4, 4},
}

// Lookup returns the named S-box. Names are case-insensitive.
func Lookup(name string) (*sbox.Sbox, error) {
	e, ok := entries[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown S-box %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return sbox.NewWithSize(e.lut, e.inputBits, e.outputBits)
}

// MustLookup is like Lookup but panics on unknown names.
func MustLookup(name string) *sbox.Sbox {
	s, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is in the catalog.
func Has(name string) bool {
	_, ok := entries[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
