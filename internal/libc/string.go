// Package libc implements the C <string.h> family over guest memory,
// generic over the code-unit type so narrow and wide strings share one
// set of algorithms. Sizes are counts of code units; pointer arithmetic
// is in code units.
//
// These functions never fail. A non-terminated string or an out-of-range
// pointer is the guest's bug and surfaces as a guest memory fault.
package libc

import (
	"touchgo/internal/guestmem"
)

// Memset writes ch into the first count units at dest and returns dest.
func Memset[C guestmem.CodeUnit](m *guestmem.Memory, dest guestmem.Ptr[C], ch C, count uint32) guestmem.Ptr[C] {
	for i := uint32(0); i < count; i++ {
		guestmem.Write(m, dest.Add(i), ch)
	}
	return dest
}

// Memcpy copies count units from src to dest and returns dest. There is
// no anti-overlap check: the guest ABI implements memcpy as memmove.
func Memcpy[C guestmem.CodeUnit](m *guestmem.Memory, dest, src guestmem.Ptr[C], count uint32) guestmem.Ptr[C] {
	m.Memmove(dest.Addr(), src.Addr(), count*guestmem.UnitSize[C]())
	return dest
}

// Memmove copies count units from src to dest, tolerating overlap, and
// returns dest.
func Memmove[C guestmem.CodeUnit](m *guestmem.Memory, dest, src guestmem.Ptr[C], count uint32) guestmem.Ptr[C] {
	m.Memmove(dest.Addr(), src.Addr(), count*guestmem.UnitSize[C]())
	return dest
}

// Memchr returns a pointer to the first occurrence of c in the first
// count units at s, or guest null if there is none.
func Memchr[C guestmem.CodeUnit](m *guestmem.Memory, s guestmem.Ptr[C], c C, count uint32) guestmem.Ptr[C] {
	for i := uint32(0); i < count; i++ {
		if guestmem.Read(m, s.Add(i)) == c {
			return s.Add(i)
		}
	}
	return guestmem.Null[C]()
}

// Strlen returns the number of units before the terminator at s.
func Strlen[C guestmem.CodeUnit](m *guestmem.Memory, s guestmem.Ptr[C]) uint32 {
	var n uint32
	for guestmem.Read(m, s.Add(n)) != 0 {
		n++
	}
	return n
}

// Strcpy copies the string at src, including the terminator, to dest and
// returns dest.
func Strcpy[C guestmem.CodeUnit](m *guestmem.Memory, dest, src guestmem.Ptr[C]) guestmem.Ptr[C] {
	for i := uint32(0); ; i++ {
		c := guestmem.Read(m, src.Add(i))
		guestmem.Write(m, dest.Add(i), c)
		if c == 0 {
			return dest
		}
	}
}

// Strcat appends the string at src to the string at dest and returns dest.
func Strcat[C guestmem.CodeUnit](m *guestmem.Memory, dest, src guestmem.Ptr[C]) guestmem.Ptr[C] {
	Strcpy(m, dest.Add(Strlen(m, dest)), src)
	return dest
}

// Strncpy copies up to n units from src to dest; once the terminator has
// been copied, the remainder of the n units is zero-filled. Exactly n
// units are written. Returns dest.
func Strncpy[C guestmem.CodeUnit](m *guestmem.Memory, dest, src guestmem.Ptr[C], n uint32) guestmem.Ptr[C] {
	end := false
	for i := uint32(0); i < n; i++ {
		var c C
		if !end {
			c = guestmem.Read(m, src.Add(i))
			if c == 0 {
				end = true
			}
		}
		guestmem.Write(m, dest.Add(i), c)
	}
	return dest
}

// Strdup copies the string at src into freshly allocated guest memory and
// returns the new pointer.
func Strdup[C guestmem.CodeUnit](m *guestmem.Memory, src guestmem.Ptr[C]) guestmem.Ptr[C] {
	n := Strlen(m, src)
	return Strcpy(m, guestmem.AllocUnits[C](m, n+1), src)
}

// Strcmp compares two strings unit by unit. It returns -1 or +1 on the
// first inequality (never the raw difference) and 0 when both strings end
// together.
func Strcmp[C guestmem.CodeUnit](m *guestmem.Memory, a, b guestmem.Ptr[C]) int32 {
	for offset := uint32(0); ; offset++ {
		ca := guestmem.Read(m, a.Add(offset))
		cb := guestmem.Read(m, b.Add(offset))
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		case ca == 0:
			return 0
		}
	}
}

// Strncmp is Strcmp limited to the first n units: n == 0 compares equal
// immediately, and reaching either offset n or a terminator without an
// inequality yields 0.
func Strncmp[C guestmem.CodeUnit](m *guestmem.Memory, a, b guestmem.Ptr[C], n uint32) int32 {
	if n == 0 {
		return 0
	}
	for offset := uint32(0); ; {
		ca := guestmem.Read(m, a.Add(offset))
		cb := guestmem.Read(m, b.Add(offset))
		offset++
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		case offset == n || ca == 0:
			return 0
		}
	}
}

// Strstr returns a pointer to the first occurrence of the string at
// needle within the string at haystack, or guest null if there is none.
// An empty needle matches at the start of the haystack.
func Strstr[C guestmem.CodeUnit](m *guestmem.Memory, haystack, needle guestmem.Ptr[C]) guestmem.Ptr[C] {
	for offset := uint32(0); ; offset++ {
		for inner := uint32(0); ; inner++ {
			cn := guestmem.Read(m, needle.Add(inner))
			if cn == 0 {
				return haystack.Add(offset)
			}
			ch := guestmem.Read(m, haystack.Add(offset+inner))
			if ch == 0 {
				return guestmem.Null[C]()
			}
			if ch != cn {
				break
			}
		}
	}
}
