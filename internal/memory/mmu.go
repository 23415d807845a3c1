package memory

import (
	"gameboy-emulator/internal/apu"
	"gameboy-emulator/internal/cartridge"
	"gameboy-emulator/internal/dma"
	"gameboy-emulator/internal/interrupt"
	"gameboy-emulator/internal/joypad"
	"gameboy-emulator/internal/ppu"
	"gameboy-emulator/internal/serial"
	"gameboy-emulator/internal/timer"
)

// MemoryInterface is the minimal read/write surface the CPU needs to
// execute instructions. Defined here, rather than in cpu, so that any
// bus implementation can satisfy it without cpu importing memory's
// concrete MMU type.
type MemoryInterface interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
	ReadWord(address uint16) uint16
}

// WRAM layout: DMG has a fixed 8KB (bank 0 + bank 1); CGB adds
// switchable banks 1-7 selected via SVBK.
const (
	wramBankSize  = 0x1000 // 4KB per bank
	wramBankCount = 8      // bank 0 (fixed) + banks 1-7 (switchable on CGB)
	hramSize      = 0x7F   // 0xFF80-0xFFFE
)

// Register addresses not already owned by a subsystem's own constants.
const (
	dmaRegister    = 0xFF46
	key1Register   = 0xFF4D
	svbkRegister   = 0xFF70
	bootROMDisable = 0xFF50
)

// MMU is the Game Boy's memory bus: it owns no gameplay logic itself,
// routing every read and write to whichever subsystem is mapped at that
// address, the way a real SoC's address decoder would.
type MMU struct {
	cartridge cartridge.MBC

	wram     [wramBankCount][wramBankSize]uint8
	wramBank uint8 // 1-7, CGB SVBK select (DMG always reads/writes bank 1)

	hram [hramSize]uint8

	interruptController *interrupt.InterruptController
	joypad               *joypad.Joypad
	timer                *timer.Timer
	serialPort           *serial.Port
	ppu                  *ppu.PPU
	apu                  *apu.APU
	dmaController        *dma.DMAController
	hdmaController       *dma.HDMAController

	key1    uint8 // CGB speed-switch register (KEY1)
	cgbMode bool

	bootROM       []byte
	bootROMMapped bool

	hblankLatched bool // tracks PPU H-Blank entry edge, to fire HDMA once
}

// NewMMU builds a bus wired to the given cartridge, interrupt controller,
// and joypad. The PPU is attached separately via SetPPU once constructed,
// mirroring how the video chip is a distinct subsystem the bus merely
// has a window into.
func NewMMU(mbc cartridge.MBC, ic *interrupt.InterruptController, jp *joypad.Joypad) *MMU {
	return &MMU{
		cartridge:           mbc,
		wramBank:            1,
		interruptController: ic,
		joypad:              jp,
		timer:               timer.NewTimer(),
		serialPort:          serial.NewPort(),
		apu:                 apu.NewAPU(),
		dmaController:       dma.NewDMAController(),
		hdmaController:      dma.NewHDMAController(),
	}
}

// NewTestMMU builds a bus over a blank 32KB ROM-only cartridge with a
// fresh interrupt controller and joypad, for unit tests that only care
// about generic memory read/write behavior and don't need a real ROM.
func NewTestMMU() *MMU {
	mbc := cartridge.NewMBC0(make([]byte, 0x8000))
	m := NewMMU(mbc, interrupt.NewInterruptController(), joypad.NewJoypad())
	m.SetPPU(ppu.NewPPU())
	return m
}

// SetPPU attaches the video subsystem once it has been constructed.
func (m *MMU) SetPPU(p *ppu.PPU) {
	m.ppu = p
}

// SetCGBMode toggles CGB-only address-space features (WRAM banking,
// VRAM banking, HDMA) on or off.
func (m *MMU) SetCGBMode(enabled bool) {
	m.cgbMode = enabled
	if m.ppu != nil {
		m.ppu.SetCGBMode(enabled)
	}
	m.apu.SetCGBMode(enabled)
}

// SetBootROM installs a boot ROM image, mapped at 0x0000-0x00FF (or
// 0x0000-0x08FF on CGB, with a cartridge-header gap) until the game
// writes to the boot-ROM-disable register (0xFF50).
func (m *MMU) SetBootROM(data []byte) {
	m.bootROM = data
	m.bootROMMapped = len(data) > 0
}

func (m *MMU) GetDMAController() *dma.DMAController   { return m.dmaController }
func (m *MMU) GetHDMAController() *dma.HDMAController { return m.hdmaController }
func (m *MMU) GetAPU() *apu.APU                        { return m.apu }
func (m *MMU) GetTimer() *timer.Timer                  { return m.timer }
func (m *MMU) GetSerialPort() *serial.Port             { return m.serialPort }
func (m *MMU) IsCGBMode() bool                         { return m.cgbMode }
func (m *MMU) IsDoubleSpeed() bool                     { return m.key1&0x80 != 0 }

// ReadByte reads a single byte from the full 64KB address space,
// routing to whichever subsystem owns that address.
func (m *MMU) ReadByte(address uint16) uint8 {
	switch {
	case m.bootROMMapped && m.inBootROMRange(address):
		return m.bootROM[address]
	case address < 0x8000:
		return m.cartridge.ReadByte(address)
	case address < 0xA000:
		return m.readVRAM(address)
	case address < 0xC000:
		return m.cartridge.ReadByte(address)
	case address < 0xD000:
		return m.wram[0][address-0xC000]
	case address < 0xE000:
		return m.wram[m.effectiveWRAMBank()][address-0xD000]
	case address < 0xF000:
		return m.wram[0][address-0xE000] // echo of bank 0
	case address < 0xFE00:
		return m.wram[m.effectiveWRAMBank()][address-0xF000] // echo of switchable bank
	case address < 0xFEA0:
		return m.readOAM(address)
	case address < 0xFF00:
		return 0xFF // unusable region
	case address < 0xFF80:
		return m.readIORegister(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default: // 0xFFFF
		return m.interruptController.GetInterruptEnable()
	}
}

// WriteByte writes a single byte, routed the same way as ReadByte.
func (m *MMU) WriteByte(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.cartridge.WriteByte(address, value)
	case address < 0xA000:
		m.writeVRAM(address, value)
	case address < 0xC000:
		m.cartridge.WriteByte(address, value)
	case address < 0xD000:
		m.wram[0][address-0xC000] = value
	case address < 0xE000:
		m.wram[m.effectiveWRAMBank()][address-0xD000] = value
	case address < 0xF000:
		m.wram[0][address-0xE000] = value
	case address < 0xFE00:
		m.wram[m.effectiveWRAMBank()][address-0xF000] = value
	case address < 0xFEA0:
		m.writeOAM(address, value)
	case address < 0xFF00:
		// unusable region, writes ignored
	case address < 0xFF80:
		m.writeIORegister(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default: // 0xFFFF
		m.interruptController.SetInterruptEnable(value)
	}
}

// WriteByteForDMA is used by the OAM DMA controller, which drives its
// own transfer and so must bypass the CPU-access-during-DMA gating a
// direct CPU write would be subject to.
func (m *MMU) WriteByteForDMA(address uint16, value uint8) {
	if address >= 0xFE00 && address < 0xFEA0 {
		if m.ppu != nil {
			m.ppu.WriteOAM(address, value)
		}
		return
	}
	m.WriteByte(address, value)
}

// ReadWord reads a little-endian 16-bit value.
func (m *MMU) ReadWord(address uint16) uint16 {
	low := m.ReadByte(address)
	high := m.ReadByte(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// WriteWord writes a little-endian 16-bit value.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.WriteByte(address, uint8(value&0xFF))
	m.WriteByte(address+1, uint8(value>>8))
}

func (m *MMU) inBootROMRange(address uint16) bool {
	if m.cgbMode {
		return address < 0x0100 || (address >= 0x0200 && address < 0x0900)
	}
	return address < 0x0100
}

func (m *MMU) effectiveWRAMBank() uint8 {
	if !m.cgbMode || m.wramBank == 0 {
		return 1
	}
	return m.wramBank
}

func (m *MMU) readVRAM(address uint16) uint8 {
	if m.ppu == nil {
		return 0xFF
	}
	return m.ppu.ReadVRAM(address)
}

func (m *MMU) writeVRAM(address uint16, value uint8) {
	if m.ppu == nil {
		return
	}
	m.ppu.WriteVRAM(address, value)
}

func (m *MMU) readOAM(address uint16) uint8 {
	if m.ppu == nil || !m.dmaController.CanCPUAccessMemory(address) {
		return 0xFF
	}
	return m.ppu.ReadOAM(address)
}

func (m *MMU) writeOAM(address uint16, value uint8) {
	if m.ppu == nil || !m.dmaController.CanCPUAccessMemory(address) {
		return
	}
	m.ppu.WriteOAM(address, value)
}

// readIORegister dispatches the 0xFF00-0xFF7F I/O window to whichever
// subsystem owns that address.
func (m *MMU) readIORegister(address uint16) uint8 {
	switch {
	case joypad.IsJoypadRegister(address):
		return m.joypad.ReadRegister(address)
	case serial.IsSerialRegister(address):
		return m.serialPort.ReadRegister(address)
	case timer.IsTimerRegister(address):
		return m.timer.ReadRegister(address)
	case address == 0xFF0F:
		return m.interruptController.GetInterruptFlag()
	case apu.IsAPURegister(address):
		return m.apu.ReadByte(address)
	case address == dmaRegister:
		return uint8(m.dmaController.GetSourceAddress() >> 8)
	case ppu.IsPPURegister(address) && m.ppu != nil:
		return m.ppu.ReadRegister(address)
	case address == key1Register:
		return m.key1 | 0x7E
	case address == svbkRegister:
		return m.wramBank | 0xF8
	case address == bootROMDisable:
		return 0xFF
	case address >= 0xFF51 && address <= 0xFF55:
		return m.hdmaController.ReadRegister(address)
	default:
		return 0xFF
	}
}

// writeIORegister dispatches the 0xFF00-0xFF7F I/O window.
func (m *MMU) writeIORegister(address uint16, value uint8) {
	switch {
	case joypad.IsJoypadRegister(address):
		m.joypad.WriteRegister(address, value)
	case serial.IsSerialRegister(address):
		m.serialPort.WriteRegister(address, value)
	case timer.IsTimerRegister(address):
		m.timer.WriteRegister(address, value)
	case address == 0xFF0F:
		m.interruptController.SetInterruptFlag(value)
	case apu.IsAPURegister(address):
		m.apu.WriteByte(address, value)
	case address == dmaRegister:
		m.dmaController.StartTransfer(value)
	case ppu.IsPPURegister(address) && m.ppu != nil:
		m.ppu.WriteRegister(address, value)
	case address == key1Register:
		m.key1 = (m.key1 & 0x80) | (value & 0x01)
	case address == svbkRegister:
		bank := value & 0x07
		if bank == 0 {
			bank = 1
		}
		m.wramBank = bank
	case address == bootROMDisable:
		if value != 0 {
			m.bootROMMapped = false
		}
	case address >= 0xFF51 && address <= 0xFF55:
		m.hdmaController.WriteRegister(address, value)
		if address == 0xFF55 && !m.hdmaController.IsHBlankMode() && m.hdmaController.IsActive() {
			m.runGeneralPurposeHDMA()
		}
	}
}

// SetDoubleSpeed flips the KEY1 armed bit into the active speed bit,
// called by the CPU once the STOP instruction performs the switch.
func (m *MMU) SetDoubleSpeed(enabled bool) {
	if enabled {
		m.key1 = (m.key1 &^ 0x01) | 0x80
	} else {
		m.key1 = m.key1 &^ 0x81
	}
}

// runGeneralPurposeHDMA drains an entire general-purpose VRAM DMA
// immediately, the way real CGB hardware does when HDMA5 bit 7 is
// written as 0 (as opposed to the H-Blank-paced mode).
func (m *MMU) runGeneralPurposeHDMA() {
	for m.hdmaController.IsActive() {
		if !m.hdmaController.Copy(m.hdmaReadByte, m.hdmaWriteByte) {
			break
		}
	}
}

// OnHBlankEntered should be called by the emulation loop each time the
// PPU transitions into H-Blank, to drive an in-progress H-Blank-paced
// HDMA transfer one block forward.
func (m *MMU) OnHBlankEntered() {
	m.hdmaController.OnHBlankEntered(m.hdmaReadByte, m.hdmaWriteByte)
}

func (m *MMU) hdmaReadByte(address uint16) uint8 {
	return m.ReadByte(address)
}

func (m *MMU) hdmaWriteByte(address uint16, value uint8) {
	m.writeVRAM(address, value)
}

// UpdateDMA advances the OAM DMA controller by the given number of
// cycles, copying bytes from source to OAM as real DMA hardware would.
func (m *MMU) UpdateDMA(cycles uint8) {
	m.dmaController.Update(cycles, dmaMemoryAdapter{m})
}

// dmaMemoryAdapter satisfies dma.MemoryInterface by delegating to the
// bus's own read/write, keeping the dma package free of an import
// cycle back to memory.
type dmaMemoryAdapter struct {
	m *MMU
}

func (a dmaMemoryAdapter) ReadByte(address uint16) uint8 { return a.m.ReadByte(address) }
func (a dmaMemoryAdapter) WriteByteForDMA(address uint16, value uint8) {
	a.m.WriteByteForDMA(address, value)
}
