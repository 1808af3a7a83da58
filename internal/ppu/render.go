package ppu

type spriteHit struct {
	x         int
	colorBit  uint8
	palette   uint8
	behind    bool
	isSprite0 bool
}

// renderScanline composites one visible row (0-239) of background and
// sprite pixels into the framebuffer. Rendering a whole row at a time
// (rather than per-dot) is the simplification spec.md's 8-bit scroll-shadow
// model calls for; it still reproduces nametable/attribute lookups,
// palette indirection, and sprite-0 hit exactly.
func (p *PPU) renderScanline(y int) {
	bgOpaque := [Width]bool{}
	for x := 0; x < Width; x++ {
		colorIdx := p.backgroundPixel(x, y, &bgOpaque[x])
		p.setPixel(x, y, colorIdx)
	}

	if p.mask&0x10 == 0 { // sprite rendering disabled
		return
	}
	sprites := p.spritesOnScanline(y)
	for x := 0; x < Width; x++ {
		for _, s := range sprites {
			if s.x != x || s.colorBit == 0 {
				continue
			}
			if s.isSprite0 && bgOpaque[x] {
				p.status |= statusSprite0Hit
			}
			if s.behind && bgOpaque[x] {
				break
			}
			addr := uint16(0x3F10) + uint16(s.palette)*4 + uint16(s.colorBit)
			p.setPixel(x, y, p.readPalette(addr))
			break
		}
	}
}

func (p *PPU) backgroundPixel(x, y int, opaque *bool) uint8 {
	if p.mask&0x08 == 0 { // background rendering disabled
		*opaque = false
		return p.readPalette(0x3F00)
	}

	effX := int(p.scrollX) + x
	effY := int(p.scrollY) + y

	ntX := int(p.ctrl & 0x01)
	if (effX/Width)%2 != 0 {
		ntX ^= 1
	}
	ntY := int((p.ctrl >> 1) & 0x01)
	if (effY/Height)%2 != 0 {
		ntY ^= 1
	}

	tileX := (effX % Width) / 8
	fineX := effX % 8
	tileY := (effY % Height) / 8
	fineY := effY % 8

	ntBase := uint16(0x2000 + (ntY*2+ntX)*0x400)
	tileIndex := p.readVRAM(ntBase + uint16(tileY*32+tileX))
	attrByte := p.readVRAM(ntBase + 0x3C0 + uint16((tileY/4)*8+(tileX/4)))
	shift := uint(((tileY%4)/2)*4 + ((tileX%4)/2)*2)
	paletteIdx := (attrByte >> shift) & 0x03

	patternBase := uint16(0x0000)
	if p.ctrl&ctrlBGPattern != 0 {
		patternBase = 0x1000
	}
	patternAddr := patternBase + uint16(tileIndex)*16 + uint16(fineY)
	lo := p.readVRAM(patternAddr)
	hi := p.readVRAM(patternAddr + 8)
	bit := uint(7 - fineX)
	colorBit := (hi>>bit)&1<<1 | (lo>>bit)&1

	if colorBit == 0 {
		*opaque = false
		return p.readPalette(0x3F00)
	}
	*opaque = true
	return p.readPalette(0x3F00 + uint16(paletteIdx)*4 + uint16(colorBit))
}

// spritesOnScanline evaluates OAM for up to eight sprites visible on y, in
// OAM order (lower index wins priority on overlap, matching hardware), and
// sets the sprite-overflow status flag when more than eight are found.
func (p *PPU) spritesOnScanline(y int) []spriteHit {
	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	var out []spriteHit
	found := 0
	for i := 0; i < 64; i++ {
		base := i * 4
		spriteY := int(p.oam[base]) + 1
		if y < spriteY || y >= spriteY+height {
			continue
		}
		found++
		if found > 8 {
			p.status |= statusSpriteOverflow
			continue
		}

		tile := p.oam[base+1]
		attr := p.oam[base+2]
		spriteX := int(p.oam[base+3])
		row := y - spriteY
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			table := uint16(tile&1) * 0x1000
			cell := uint16(tile &^ 1)
			if row >= 8 {
				cell++
				row -= 8
			}
			patternAddr = table + cell*16 + uint16(row)
		} else {
			table := uint16(0)
			if p.ctrl&ctrlSpritePattern != 0 {
				table = 0x1000
			}
			patternAddr = table + uint16(tile)*16 + uint16(row)
		}
		lo := p.readVRAM(patternAddr)
		hi := p.readVRAM(patternAddr + 8)

		for col := 0; col < 8; col++ {
			bit := uint(col)
			if attr&0x40 == 0 {
				bit = 7 - uint(col)
			}
			colorBit := (hi>>bit)&1<<1 | (lo>>bit)&1
			x := spriteX + col
			if x < 0 || x >= Width {
				continue
			}
			out = append(out, spriteHit{
				x:         x,
				colorBit:  colorBit,
				palette:   attr & 0x03,
				behind:    attr&0x20 != 0,
				isSprite0: i == 0,
			})
		}
	}
	return out
}

func (p *PPU) setPixel(x, y int, paletteIndex uint8) {
	c := systemPalette[paletteIndex&0x3F]
	i := (y*Width + x) * 4
	p.frame[i] = c[0]
	p.frame[i+1] = c[1]
	p.frame[i+2] = c[2]
	p.frame[i+3] = 0xFF
}
