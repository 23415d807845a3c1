// Package ppu implements the Game Boy Picture Processing Unit (PPU)
// for graphics rendering, including background, window, and sprite systems.
//
// The Game Boy PPU renders a 160x144 pixel display with 4-color grayscale
// graphics using a tile-based system with sprites and scrolling backgrounds.
package ppu

// Game Boy display constants
const (
	// Display dimensions
	ScreenWidth  = 160 // Visible pixels per scanline
	ScreenHeight = 144 // Visible scanlines per frame
	
	// Timing constants (cycles per operation)
	TotalScanlines    = 154 // Total scanlines including V-Blank (144 visible + 10 V-Blank)
	CyclesPerScanline = 456 // CPU cycles per scanline (456 T-cycles)
	CyclesPerFrame    = TotalScanlines * CyclesPerScanline // 70224 cycles per frame
	
	// PPU mode durations (in T-cycles)
	OAMScanCycles  = 80  // Mode 2: OAM scan duration (20 M-cycles × 4)
	DrawingCycles  = 172 // Mode 3: Drawing duration (43 M-cycles × 4, minimum)
	HBlankCycles   = 204 // Mode 0: H-Blank duration (51 M-cycles × 4, minimum)
	VBlankDuration = 4560 // Mode 1: V-Blank duration (10 scanlines × 456 T-cycles)
	
	// Color values (4-shade grayscale)
	ColorWhite     = 0 // Lightest shade
	ColorLightGray = 1 // Light gray
	ColorDarkGray  = 2 // Dark gray  
	ColorBlack     = 3 // Darkest shade
)

// PPUMode represents the current state of the PPU rendering pipeline
type PPUMode uint8

const (
	ModeHBlank  PPUMode = 0 // H-Blank: CPU can access VRAM/OAM
	ModeVBlank  PPUMode = 1 // V-Blank: Frame complete, CPU can access all video memory
	ModeOAMScan PPUMode = 2 // OAM Scan: PPU reading sprite data, CPU cannot access OAM
	ModeDrawing PPUMode = 3 // Drawing: PPU rendering pixels, CPU cannot access VRAM/OAM
)

// String returns human-readable PPU mode name
func (mode PPUMode) String() string {
	switch mode {
	case ModeHBlank:
		return "H-Blank"
	case ModeVBlank:
		return "V-Blank"  
	case ModeOAMScan:
		return "OAM Scan"
	case ModeDrawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// PPU represents the Game Boy Picture Processing Unit
// Handles all graphics rendering including background, window, and sprites
type PPU struct {
	// Framebuffer holds the composited output, one packed RGBA8888 value
	// per screen position ([row][column]), ready for a display backend to
	// blit directly. DMG colors come from the authentic green-tinted
	// palette; CGB colors are decoded from BG/OBJ palette RAM.
	Framebuffer [ScreenHeight][ScreenWidth]uint32

	// shadeBuffer holds the pre-RGBA 4-shade color index (0-3) that fed the
	// last write to Framebuffer via SetPixel. GetPixel/SetPixel expose this
	// index directly; it is the DMG-era pixel representation tests and
	// simple callers still compare against.
	shadeBuffer [ScreenHeight][ScreenWidth]uint8

	// bgColorIndex and bgPriority record, per pixel, the raw (pre-palette)
	// background/window color index and the CGB BG-to-OBJ priority bit for
	// that tile. Sprites consult these to resolve priority instead of
	// re-deriving the background tile.
	bgColorIndex [ScreenHeight][ScreenWidth]uint8
	bgPriority   [ScreenHeight][ScreenWidth]bool

	// LCD Control Registers (memory-mapped I/O at 0xFF40-0xFF4B)
	LCDC uint8 // 0xFF40 - LCD Control register
	STAT uint8 // 0xFF41 - LCD Status register
	SCY  uint8 // 0xFF42 - Background scroll Y
	SCX  uint8 // 0xFF43 - Background scroll X
	LY   uint8 // 0xFF44 - Current scanline (0-153)
	LYC  uint8 // 0xFF45 - LY Compare register
	WY   uint8 // 0xFF4A - Window Y position
	WX   uint8 // 0xFF4B - Window X position
	
	// Palette Registers (color mapping)
	BGP  uint8 // 0xFF47 - Background palette data
	OBP0 uint8 // 0xFF48 - Object palette 0 data
	OBP1 uint8 // 0xFF49 - Object palette 1 data
	
	// Internal PPU state
	Mode         PPUMode // Current PPU mode (0-3)
	Cycles       uint16  // Cycle counter for current scanline
	FrameReady   bool    // True when a complete frame has been rendered
	LCDEnabled   bool    // LCD on/off state from LCDC bit 7
	
	// VRAM access interface (will be connected to MMU)
	vramInterface VRAMInterface

	// Video memory the PPU owns directly. DMG uses only bank 0; CGB
	// switches between the two via VBK (0xFF4F).
	vramBank0 *VRAM
	vramBank1 *VRAM
	vramBank  uint8 // 0 or 1, selected by VBK bit 0

	oam [OAMSize]uint8 // 0xFE00-0xFE9F, 40 sprites x 4 bytes

	// CGB BG/OBJ palette RAM (8 palettes x 4 colors x 2 bytes each, BGR555)
	cgbMode        bool
	bgPaletteRAM   [64]uint8
	bgPaletteIndex uint8
	bgAutoIncrement bool
	objPaletteRAM   [64]uint8
	objPaletteIndex uint8
	objAutoIncrement bool
	spritesByOAMOrder bool // OPRI: CGB sprite priority mode (true = index order, false = x-coord order)

	// Per-scanline compositors, wired to this PPU's own VRAM/OAM.
	background *BackgroundRenderer
	window     *WindowRenderer
	sprites    *SpriteRenderer
}

// VRAMInterface defines the interface for accessing video memory
// This allows the PPU to read tile data and tile maps from VRAM
type VRAMInterface interface {
	ReadVRAM(address uint16) uint8   // Read byte from VRAM (0x8000-0x9FFF)
	WriteVRAM(address uint16, value uint8) // Write byte to VRAM
	ReadOAM(address uint16) uint8    // Read byte from OAM (0xFE00-0xFE9F)
	WriteOAM(address uint16, value uint8)  // Write byte to OAM
}

// NewPPU creates a new PPU instance with default Game Boy state
func NewPPU() *PPU {
	ppu := &PPU{
		// Initialize display to white (color 0)

		// Initialize LCD registers to Game Boy power-on state
		LCDC: 0x91, // LCD enabled, background enabled, default tile maps
		STAT: 0x00, // Mode 0 (H-Blank), no interrupts enabled
		SCY:  0x00, // No initial scroll
		SCX:  0x00,
		LY:   0x00, // Start at scanline 0
		LYC:  0x00,
		WY:   0x00, // Window at top-left
		WX:   0x00,
		
		// Initialize palettes to identity mapping (0→0, 1→1, 2→2, 3→3)
		BGP:  0xE4, // 11100100 - standard Game Boy palette
		OBP0: 0xE4,
		OBP1: 0xE4,
		
		// Initialize PPU state
		Mode:       ModeOAMScan, // Start in OAM scan mode
		Cycles:     0,
		FrameReady: false,
		LCDEnabled: true, // LCD starts enabled (LCDC bit 7)

		vramBank0: NewVRAM(),
		vramBank1: NewVRAM(),
	}

	// Set STAT register mode bits to match initial mode
	ppu.updateSTATMode()
	ppu.clearFramebufferToWhite()

	// The PPU owns its VRAM/OAM directly; it is its own VRAMInterface.
	ppu.vramInterface = ppu
	ppu.background = NewBackgroundRenderer(ppu, ppu)
	ppu.window = NewWindowRenderer(ppu, ppu)
	ppu.sprites = NewSpriteRenderer(ppu, ppu)

	return ppu
}

// GetBackgroundRenderer returns the PPU's background compositor.
func (ppu *PPU) GetBackgroundRenderer() *BackgroundRenderer {
	return ppu.background
}

// GetWindowRenderer returns the PPU's window compositor.
func (ppu *PPU) GetWindowRenderer() *WindowRenderer {
	return ppu.window
}

// GetSpriteRenderer returns the PPU's sprite compositor.
func (ppu *PPU) GetSpriteRenderer() *SpriteRenderer {
	return ppu.sprites
}

// clearFramebufferToWhite resets Framebuffer/shadeBuffer to the power-on
// blank screen (DMG color 0, packed as opaque white RGBA).
func (ppu *PPU) clearFramebufferToWhite() {
	white := packRGBA(255, 255, 255)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			ppu.Framebuffer[y][x] = white
			ppu.shadeBuffer[y][x] = ColorWhite
		}
	}
}

// readVRAMBank reads a byte from a specific VRAM bank, bypassing the VBK
// bank-select register. The PPU always fetches BG/window tile indices from
// bank 0 and CGB tile attributes from bank 1 regardless of which bank VBK
// currently exposes to the CPU.
func (ppu *PPU) readVRAMBank(bank uint8, address uint16) uint8 {
	if bank == 1 {
		return ppu.vramBank1.ReadByte(address)
	}
	return ppu.vramBank0.ReadByte(address)
}

// recordBGPixel stores the raw background/window color index (0-3) and the
// CGB BG-to-OBJ priority bit for a screen position, consulted by the sprite
// renderer when resolving priority.
func (ppu *PPU) recordBGPixel(x, y int, colorIndex uint8, priority bool) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	ppu.bgColorIndex[y][x] = colorIndex
	ppu.bgPriority[y][x] = priority
}

// GetBGColorIndex returns the raw (pre-palette) background/window color
// index last recorded at the given screen position.
func (ppu *PPU) GetBGColorIndex(x, y int) uint8 {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return 0
	}
	return ppu.bgColorIndex[y][x]
}

// GetBGPriority returns the CGB BG-to-OBJ priority bit last recorded at the
// given screen position.
func (ppu *PPU) GetBGPriority(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return ppu.bgPriority[y][x]
}

// dmgShadeToRGBA converts a post-palette DMG shade (0-3) to the authentic
// Game Boy green-tinted RGBA color.
func (ppu *PPU) dmgShadeToRGBA(shade uint8) uint32 {
	c := GetRGBColor(shade, true)
	return packRGBA(c.R, c.G, c.B)
}

// cgbColorToRGBA decodes a CGB BG or OBJ palette entry to RGBA.
func (ppu *PPU) cgbColorToRGBA(paletteNum, colorIndex uint8, isSprite bool) uint32 {
	var r, g, b uint8
	if isSprite {
		r, g, b = ppu.GetCGBObjectColor(paletteNum, colorIndex)
	} else {
		r, g, b = ppu.GetCGBBackgroundColor(paletteNum, colorIndex)
	}
	return packRGBA(r, g, b)
}

// SetPixelRGBA writes a fully-resolved RGBA color directly to the
// framebuffer, bypassing the DMG shade-index path. Used by CGB compositing,
// which has no single 0-3 shade to report.
func (ppu *PPU) SetPixelRGBA(x, y int, rgba uint32) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	ppu.Framebuffer[y][x] = rgba
}

// SetVRAMInterface connects the PPU to a VRAM access interface. The PPU
// defaults to using its own owned VRAM/OAM; this exists so the renderers
// and any external inspection can be pointed elsewhere (tests).
func (ppu *PPU) SetVRAMInterface(vramInterface VRAMInterface) {
	ppu.vramInterface = vramInterface
}

// SetCGBMode enables CGB-specific VRAM banking and palette RAM behavior.
func (ppu *PPU) SetCGBMode(enabled bool) {
	ppu.cgbMode = enabled
}

// currentVRAMBank returns the VRAM bank selected by VBK.
func (ppu *PPU) currentVRAMBank() *VRAM {
	if ppu.cgbMode && ppu.vramBank == 1 {
		return ppu.vramBank1
	}
	return ppu.vramBank0
}

// ReadVRAM implements VRAMInterface, reading from the bank VBK selects.
func (ppu *PPU) ReadVRAM(address uint16) uint8 {
	return ppu.currentVRAMBank().ReadByte(address)
}

// WriteVRAM implements VRAMInterface, writing to the bank VBK selects.
func (ppu *PPU) WriteVRAM(address uint16, value uint8) {
	ppu.currentVRAMBank().WriteByte(address, value)
}

// ReadOAM implements VRAMInterface.
func (ppu *PPU) ReadOAM(address uint16) uint8 {
	if address < OAMStartAddress || address > OAMEndAddress {
		return 0xFF
	}
	return ppu.oam[address-OAMStartAddress]
}

// WriteOAM implements VRAMInterface.
func (ppu *PPU) WriteOAM(address uint16, value uint8) {
	if address < OAMStartAddress || address > OAMEndAddress {
		return
	}
	ppu.oam[address-OAMStartAddress] = value
}

// GetVBK returns the VRAM bank select register (0xFF4F); bit 0 only, rest read as 1.
func (ppu *PPU) GetVBK() uint8 {
	return ppu.vramBank | 0xFE
}

// SetVBK writes the VRAM bank select register.
func (ppu *PPU) SetVBK(value uint8) {
	ppu.vramBank = value & 0x01
}

// Reset resets the PPU to initial Game Boy state
func (ppu *PPU) Reset() {
	ppu.clearFramebufferToWhite()

	// Reset registers to power-on state
	ppu.LCDC = 0x91
	ppu.STAT = 0x00
	ppu.SCY = 0x00
	ppu.SCX = 0x00
	ppu.LY = 0x00
	ppu.LYC = 0x00
	ppu.WY = 0x00
	ppu.WX = 0x00
	ppu.BGP = 0xE4
	ppu.OBP0 = 0xE4
	ppu.OBP1 = 0xE4
	
	// Reset internal state
	ppu.Mode = ModeOAMScan
	ppu.Cycles = 0
	ppu.FrameReady = false
	ppu.LCDEnabled = true
}

// IsFrameReady returns true if a complete frame has been rendered
// The caller should reset this flag after processing the frame
func (ppu *PPU) IsFrameReady() bool {
	return ppu.FrameReady
}

// ClearFrameReady resets the frame ready flag after the frame has been processed
func (ppu *PPU) ClearFrameReady() {
	ppu.FrameReady = false
}

// GetCurrentMode returns the current PPU mode for STAT register access
func (ppu *PPU) GetCurrentMode() PPUMode {
	return ppu.Mode
}

// GetCurrentScanline returns the current scanline (LY register value)
func (ppu *PPU) GetCurrentScanline() uint8 {
	return ppu.LY
}

// IsLCDEnabled returns true if the LCD is currently enabled (LCDC bit 7)
func (ppu *PPU) IsLCDEnabled() bool {
	return ppu.LCDEnabled
}

// Update advances the PPU state by the specified number of CPU cycles
// This should be called once per CPU instruction execution
// Returns true if any interrupts should be triggered
func (ppu *PPU) Update(cycles uint8) bool {
	// If LCD is disabled, don't update PPU timing
	if !ppu.LCDEnabled {
		return false
	}
	
	ppu.Cycles += uint16(cycles)
	interruptRequested := false
	
	// Handle PPU mode transitions based on current scanline and cycle count
	if ppu.LY < ScreenHeight {
		// Visible scanlines (0-143): OAM Scan → Drawing → H-Blank
		switch ppu.Mode {
		case ModeOAMScan:
			if ppu.Cycles >= OAMScanCycles {
				ppu.sprites.ScanOAM()
				ppu.setMode(ModeDrawing)
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					interruptRequested = true
				}
			}

		case ModeDrawing:
			if ppu.Cycles >= OAMScanCycles+DrawingCycles {
				ppu.renderScanline(ppu.LY)
				ppu.setMode(ModeHBlank)
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					interruptRequested = true
				}
			}
			
		case ModeHBlank:
			if ppu.Cycles >= CyclesPerScanline {
				ppu.nextScanline()
				// Check for LYC=LY interrupt
				if ppu.updateLYCFlag() {
					interruptRequested = true
				}
				
				if ppu.LY == ScreenHeight {
					// Entering V-Blank
					ppu.setMode(ModeVBlank)
					ppu.FrameReady = true
					interruptRequested = true // V-Blank interrupt (always triggered)
					// Also check for STAT V-Blank interrupt
					if ppu.ShouldTriggerSTATInterrupt() {
						interruptRequested = true
					}
				} else {
					// Next visible scanline
					ppu.setMode(ModeOAMScan)
					// Check for STAT interrupt on mode change
					if ppu.ShouldTriggerSTATInterrupt() {
						interruptRequested = true
					}
				}
			}
		}
	} else {
		// V-Blank scanlines (144-153): V-Blank mode only
		if ppu.Cycles >= CyclesPerScanline {
			ppu.nextScanline()
			// Check for LYC=LY interrupt during V-Blank
			if ppu.updateLYCFlag() {
				interruptRequested = true
			}
			
			if ppu.LY == TotalScanlines {
				// Frame complete, restart at scanline 0
				ppu.LY = 0
				ppu.window.ResetWindowState()
				ppu.setMode(ModeOAMScan)
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					interruptRequested = true
				}
			}
		}
	}
	
	return interruptRequested
}

// renderScanline composites background, window, and sprites for one
// scanline into the framebuffer, in Game Boy priority order (background,
// then window over it, then sprites over both subject to priority bits).
func (ppu *PPU) renderScanline(scanline uint8) {
	if scanline >= ScreenHeight {
		return
	}
	ppu.background.RenderBackgroundScanline(scanline)
	ppu.window.RenderWindowScanline(scanline)
	ppu.sprites.RenderSpriteScanline(scanline)
}

// setMode changes the current PPU mode and updates STAT register
func (ppu *PPU) setMode(newMode PPUMode) {
	ppu.Mode = newMode
	ppu.updateSTATMode()
}

// nextScanline advances to the next scanline and resets cycle counter
func (ppu *PPU) nextScanline() {
	ppu.Cycles = 0
	ppu.LY++
	
	// Check LYC=LY interrupt condition
	ppu.updateLYCFlag()
}

// GetPixel returns the DMG shade index (0-3) last written at the specified
// screen coordinates. Returns ColorWhite if coordinates are out of bounds.
func (ppu *PPU) GetPixel(x, y int) uint8 {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return ColorWhite
	}
	return ppu.shadeBuffer[y][x]
}

// SetPixel sets the DMG shade index (0-3) at the specified screen
// coordinates and resolves it to RGBA in Framebuffer via the authentic
// Game Boy palette. Does nothing if coordinates are out of bounds.
func (ppu *PPU) SetPixel(x, y int, color uint8) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	if color > ColorBlack {
		color = ColorBlack // Clamp to valid color range
	}
	ppu.shadeBuffer[y][x] = color
	ppu.Framebuffer[y][x] = ppu.dmgShadeToRGBA(color)
}