// Package guestmem provides the guest linear address space: a flat,
// little-endian byte buffer with typed pointer accessors and a bump
// allocator. Address 0 is reserved as the guest null pointer.
package guestmem

import (
	"encoding/binary"
	"fmt"
)

// heapBase keeps the lowest page unmapped so address 0 stays null.
const heapBase = 0x1000

// Memory is a guest address space. It is confined to the single
// cooperative emulator thread, like the rest of the guest state.
type Memory struct {
	buffer []byte
	brk    uint32
}

// New allocates a guest address space of size bytes. Sizes below the
// reserved null page are rounded up to it.
func New(size uint32) *Memory {
	if size < heapBase {
		size = heapBase
	}
	return &Memory{buffer: make([]byte, size), brk: heapBase}
}

// Size returns the size of the address space in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.buffer))
}

// hasSize reports whether byteCount bytes fit at offset.
func (m *Memory) hasSize(offset, byteCount uint32) bool {
	return uint64(offset)+uint64(byteCount) <= uint64(len(m.buffer)) // uint64 prevents overflow on add
}

func (m *Memory) check(offset, byteCount uint32) {
	if !m.hasSize(offset, byteCount) {
		panic(fmt.Sprintf("guest memory access out of bounds: offset=%#x size=%d memory=%d", offset, byteCount, len(m.buffer)))
	}
}

func (m *Memory) ReadByte(offset uint32) byte {
	m.check(offset, 1)
	return m.buffer[offset]
}

func (m *Memory) WriteByte(offset uint32, v byte) {
	m.check(offset, 1)
	m.buffer[offset] = v
}

func (m *Memory) ReadUint16Le(offset uint32) uint16 {
	m.check(offset, 2)
	return binary.LittleEndian.Uint16(m.buffer[offset : offset+2])
}

func (m *Memory) WriteUint16Le(offset uint32, v uint16) {
	m.check(offset, 2)
	binary.LittleEndian.PutUint16(m.buffer[offset:], v)
}

func (m *Memory) ReadUint32Le(offset uint32) uint32 {
	m.check(offset, 4)
	return binary.LittleEndian.Uint32(m.buffer[offset : offset+4])
}

func (m *Memory) WriteUint32Le(offset uint32, v uint32) {
	m.check(offset, 4)
	binary.LittleEndian.PutUint32(m.buffer[offset:], v)
}

// ReadBytes copies byteCount bytes starting at offset out of guest memory.
func (m *Memory) ReadBytes(offset, byteCount uint32) []byte {
	m.check(offset, byteCount)
	out := make([]byte, byteCount)
	copy(out, m.buffer[offset:offset+byteCount])
	return out
}

// WriteBytes copies data into guest memory at offset.
func (m *Memory) WriteBytes(offset uint32, data []byte) {
	m.check(offset, uint32(len(data)))
	copy(m.buffer[offset:], data)
}

// Memmove copies byteCount bytes from src to dst. The regions may overlap.
func (m *Memory) Memmove(dst, src, byteCount uint32) {
	m.check(dst, byteCount)
	m.check(src, byteCount)
	copy(m.buffer[dst:dst+byteCount], m.buffer[src:src+byteCount])
}

// Alloc carves byteCount bytes out of the guest heap and returns their
// address. Allocations are 4-byte aligned and never freed.
func (m *Memory) Alloc(byteCount uint32) uint32 {
	addr := m.brk
	m.check(addr, byteCount)
	m.brk = addr + (byteCount+3)&^uint32(3)
	return addr
}
