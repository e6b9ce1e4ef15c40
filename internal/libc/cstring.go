package libc

import (
	"touchgo/internal/guestmem"
)

// WChar is the guest wide character type (UTF-32, matching wchar_t).
type WChar = uint32

// WriteCString copies s into freshly allocated guest memory as a
// NUL-terminated narrow string and returns its guest pointer.
func WriteCString(m *guestmem.Memory, s string) guestmem.Ptr[uint8] {
	p := guestmem.AllocUnits[uint8](m, uint32(len(s))+1)
	m.WriteBytes(p.Addr(), []byte(s))
	m.WriteByte(p.Addr()+uint32(len(s)), 0)
	return p
}

// ReadCString reads the NUL-terminated narrow string at p out of guest
// memory.
func ReadCString(m *guestmem.Memory, p guestmem.Ptr[uint8]) string {
	n := Strlen(m, p)
	return string(m.ReadBytes(p.Addr(), n))
}

// WriteWString copies s into freshly allocated guest memory as a
// NUL-terminated wide string and returns its guest pointer.
func WriteWString(m *guestmem.Memory, s string) guestmem.Ptr[WChar] {
	runes := []rune(s)
	p := guestmem.AllocUnits[WChar](m, uint32(len(runes))+1)
	for i, r := range runes {
		guestmem.Write(m, p.Add(uint32(i)), WChar(r))
	}
	guestmem.Write(m, p.Add(uint32(len(runes))), 0)
	return p
}

// ReadWString reads the NUL-terminated wide string at p out of guest
// memory.
func ReadWString(m *guestmem.Memory, p guestmem.Ptr[WChar]) string {
	var runes []rune
	for i := uint32(0); ; i++ {
		c := guestmem.Read(m, p.Add(i))
		if c == 0 {
			return string(runes)
		}
		runes = append(runes, rune(c))
	}
}
