package guestmem

// CodeUnit is the set of guest string code-unit types: narrow bytes and
// the 16- and 32-bit wide units. The zero value of each is the string
// terminator.
type CodeUnit interface {
	uint8 | uint16 | uint32
}

// Ptr is a guest address typed by the code unit it points at. Pointer
// arithmetic is in units of C, not bytes. The zero value is guest null.
type Ptr[C CodeUnit] uint32

// Null returns the guest null pointer.
func Null[C CodeUnit]() Ptr[C] { return 0 }

func (p Ptr[C]) IsNull() bool { return p == 0 }

// Addr returns the raw guest address.
func (p Ptr[C]) Addr() uint32 { return uint32(p) }

// Add advances the pointer by n code units.
func (p Ptr[C]) Add(n uint32) Ptr[C] {
	return p + Ptr[C](n*UnitSize[C]())
}

// UnitSize returns the guest size in bytes of the code unit C.
func UnitSize[C CodeUnit]() uint32 {
	var zero C
	switch any(zero).(type) {
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 1
	}
}

// Read loads one code unit from guest memory.
func Read[C CodeUnit](m *Memory, p Ptr[C]) C {
	switch UnitSize[C]() {
	case 2:
		return C(m.ReadUint16Le(uint32(p)))
	case 4:
		return C(m.ReadUint32Le(uint32(p)))
	default:
		return C(m.ReadByte(uint32(p)))
	}
}

// Write stores one code unit into guest memory.
func Write[C CodeUnit](m *Memory, p Ptr[C], v C) {
	switch UnitSize[C]() {
	case 2:
		m.WriteUint16Le(uint32(p), uint16(v))
	case 4:
		m.WriteUint32Le(uint32(p), uint32(v))
	default:
		m.WriteByte(uint32(p), byte(v))
	}
}

// AllocUnits allocates n code units on the guest heap and returns a typed
// pointer to them.
func AllocUnits[C CodeUnit](m *Memory, n uint32) Ptr[C] {
	return Ptr[C](m.Alloc(n * UnitSize[C]()))
}
