package dma

// HDMA register addresses (CGB only).
const (
	HDMA1Register = 0xFF51 // Source high byte
	HDMA2Register = 0xFF52 // Source low byte (lower 4 bits ignored)
	HDMA3Register = 0xFF53 // Destination high byte (VRAM-relative)
	HDMA4Register = 0xFF54 // Destination low byte (lower 4 bits ignored)
	HDMA5Register = 0xFF55 // Transfer length/mode/start

	HDMABlockSize = 0x10 // Bytes transferred per block (16 bytes)
)

// HDMAController implements the CGB's VRAM DMA: a General-Purpose DMA
// (moves everything immediately) and an H-Blank DMA (moves one 16-byte
// block per H-Blank period, pausing while the PPU isn't in mode 0).
type HDMAController struct {
	srcHigh, srcLow uint8
	dstHigh, dstLow uint8

	active       bool
	hblankMode   bool
	blocksLeft   uint8 // blocks remaining, 0-127 (length = (blocksLeft+1)*16)
	cyclesInHBlank uint8
}

// NewHDMAController creates an idle HDMA controller.
func NewHDMAController() *HDMAController {
	return &HDMAController{}
}

// WriteRegister handles writes to HDMA1-5.
func (h *HDMAController) WriteRegister(address uint16, value uint8) {
	switch address {
	case HDMA1Register:
		h.srcHigh = value
	case HDMA2Register:
		h.srcLow = value & 0xF0
	case HDMA3Register:
		h.dstHigh = value & 0x1F
	case HDMA4Register:
		h.dstLow = value & 0xF0
	case HDMA5Register:
		h.start(value)
	}
}

// ReadRegister handles reads of HDMA1-5. HDMA1-4 are write-only on
// hardware and read back as 0xFF; HDMA5 reports remaining length and
// active/inactive status.
func (h *HDMAController) ReadRegister(address uint16) uint8 {
	if address == HDMA5Register {
		if !h.active {
			return 0xFF
		}
		return h.blocksLeft & 0x7F // bit 7 clear while active
	}
	return 0xFF
}

func (h *HDMAController) start(value uint8) {
	mode := value & 0x80 != 0
	length := value & 0x7F

	if h.active && h.hblankMode && !mode {
		// Writing bit 7 = 0 while an H-Blank transfer is running cancels it.
		h.active = false
		return
	}

	h.hblankMode = mode
	h.blocksLeft = length
	h.active = true
	h.cyclesInHBlank = 0
}

// SourceAddress returns the current 16-bit source address (updates as
// blocks transfer).
func (h *HDMAController) SourceAddress() uint16 {
	return uint16(h.srcHigh)<<8 | uint16(h.srcLow)
}

// DestAddress returns the current VRAM-relative destination address
// (0x8000-0x9FF0, caller adds the 0x8000 base).
func (h *HDMAController) DestAddress() uint16 {
	return 0x8000 | uint16(h.dstHigh)<<8 | uint16(h.dstLow)
}

// IsActive reports whether a transfer (of either kind) is in progress.
func (h *HDMAController) IsActive() bool {
	return h.active
}

// IsHBlankMode reports whether the active transfer is H-Blank-paced
// rather than general-purpose (immediate).
func (h *HDMAController) IsHBlankMode() bool {
	return h.hblankMode
}

// Copy performs one 16-byte block transfer using the given read/write
// callbacks (so the caller controls VRAM banking and source gating),
// advancing source/destination and decrementing the block counter.
// Returns false once no blocks remain.
func (h *HDMAController) Copy(read func(addr uint16) uint8, write func(addr uint16, value uint8)) bool {
	if !h.active {
		return false
	}

	src := h.SourceAddress()
	dst := h.DestAddress()

	for i := uint16(0); i < HDMABlockSize; i++ {
		write(dst+i, read(src+i))
	}

	src += HDMABlockSize
	dst += HDMABlockSize
	h.srcHigh = uint8(src >> 8)
	h.srcLow = uint8(src & 0xF0)
	h.dstHigh = uint8((dst>>8)&0x1F)
	h.dstLow = uint8(dst & 0xF0)

	if h.blocksLeft == 0 {
		h.active = false
		return false
	}
	h.blocksLeft--
	return h.active
}

// OnHBlankEntered should be called once each time the PPU enters mode 0
// (H-Blank), transferring exactly one block if an H-Blank-paced DMA is
// active.
func (h *HDMAController) OnHBlankEntered(read func(addr uint16) uint8, write func(addr uint16, value uint8)) {
	if !h.active || !h.hblankMode {
		return
	}
	h.Copy(read, write)
}

// Reset returns the controller to its idle state.
func (h *HDMAController) Reset() {
	*h = HDMAController{}
}
