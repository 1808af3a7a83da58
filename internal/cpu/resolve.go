package cpu

// resolve advances PC past the operand bytes for mode and returns the
// effective address (for modes that compute one) or an address whose byte
// is read for the operand (including, for IMM, the operand byte itself).
// The returned bool reports whether computing the address crossed a page
// boundary, which only matters for the modes with an entry in
// pageCrossingPenalty.
func (c *CPU) resolve(mode AddressMode) (uint16, bool) {
	switch mode {
	case IMP:
		return 0, false

	case IMM:
		addr := c.PC
		c.PC++
		return addr, false

	case ZPG:
		addr := uint16(c.bus.Read(c.PC))
		c.PC++
		return addr, false

	case ZPX:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.X))
		c.PC++
		return addr, false

	case ZPY:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.Y))
		c.PC++
		return addr, false

	case ABS:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr, false

	case ABX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return addr, pageCrossed(base, addr)

	case ABY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)

	case IND:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16Wrapped(ptr), false

	case IDX:
		zp := c.bus.Read(c.PC) + c.X
		c.PC++
		addr := c.read16Wrapped(uint16(zp))
		return addr, false

	case IDY:
		zp := c.bus.Read(c.PC)
		c.PC++
		base := c.read16Wrapped(uint16(zp))
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)

	case REL:
		offset := int8(c.bus.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset)), false

	default:
		return 0, false
	}
}

// read16Wrapped reproduces the indirect-JMP page-wrap bug: if the low byte
// of ptr is 0xFF, the high byte is fetched from the start of the SAME page
// rather than the next one.
func (c *CPU) read16Wrapped(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.bus.Read(hiAddr))
	return lo | hi<<8
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

func branchCrossesPage(newPC, target uint16) bool {
	return newPC&0xFF00 != target&0xFF00
}
