package emulator

import (
	"gameboy-emulator/internal/cartridge"
	"gameboy-emulator/internal/cpu"
	"gameboy-emulator/internal/gberr"
	"gameboy-emulator/internal/interrupt"
	"gameboy-emulator/internal/joypad"
	"gameboy-emulator/internal/memory"
	"gameboy-emulator/internal/ppu"
)

// dmgBootROMSize and cgbBootROMSize are the only two valid boot ROM
// lengths: the original 256-byte DMG boot ROM, and the CGB boot ROM
// (2048 bytes of CGB-only code following the first 256 shared bytes).
const (
	dmgBootROMSize = 0x100
	cgbBootROMSize = 0x900
)

// Variant selects which physical device EmulatorCore pretends to be: the
// original DMG or the Color CGB. It governs the post-boot register
// snapshot and the APU's high-pass filter coefficient.
type Variant int

const (
	VariantDMG Variant = iota
	VariantCGB
)

func (v Variant) String() string {
	if v == VariantCGB {
		return "CGB"
	}
	return "DMG"
}

// Mode selects the compatibility mode a CGB cartridge runs under. A DMG
// cartridge run on CGB hardware runs in ModeDMGCompat; everything else is
// ModeNative.
type Mode int

const (
	ModeNative Mode = iota
	ModeDMGCompat
)

// DebugFlags gates development-only behavior that production playback
// never needs: breakpoint halting and single-step tracing.
type DebugFlags struct {
	Breakpoints map[uint16]bool
	StepTrace   bool
}

// DeviceConfig is the immutable identity EmulatorCore is constructed with:
// which hardware it pretends to be, which compatibility mode it runs in,
// and what debug instrumentation is active. It never changes after
// NewEmulatorCore returns.
type DeviceConfig struct {
	Variant    Variant
	Mode       Mode
	DebugFlags DebugFlags
}

// DefaultDeviceConfig returns a plain DMG configuration with no debug
// instrumentation, the configuration most callers want.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{Variant: VariantDMG, Mode: ModeNative}
}

// EventType classifies an Event drained from the signal bus.
type EventType int

const (
	EventVBlank EventType = iota
	EventLCDStat
	EventTimer
	EventSerial
	EventJoypad
	EventBreakpointHit
	EventInvalidOpcode
)

func (t EventType) String() string {
	switch t {
	case EventVBlank:
		return "VBlank"
	case EventLCDStat:
		return "LCDStat"
	case EventTimer:
		return "Timer"
	case EventSerial:
		return "Serial"
	case EventJoypad:
		return "Joypad"
	case EventBreakpointHit:
		return "BreakpointHit"
	case EventInvalidOpcode:
		return "InvalidOpcode"
	default:
		return "Unknown"
	}
}

// Event is a single notable occurrence surfaced to the caller from one
// Step or RunFrame call. Interrupt-shaped events (VBlank, LCDStat, Timer,
// Serial, Joypad) are reported in addition to - not instead of - folding
// the matching bit into IF; they exist so a caller can react to frame
// completion, audio needs, or link-cable activity without polling
// memory-mapped registers itself.
type Event struct {
	Type EventType
	PC   uint16 // program counter at the time of the event, where meaningful
}

// signalBus accumulates pending interrupt requests and debug events
// raised by peripherals during a single Step, so EmulatorCore can fold
// them into IF and report them to the caller all at once at the end of
// the step rather than peripherals reaching into the interrupt
// controller individually mid-step.
type signalBus struct {
	pendingInterrupts uint8
	events            []Event
}

func (b *signalBus) raiseInterrupt(bit uint8, evt EventType, pc uint16) {
	b.pendingInterrupts |= bit
	b.events = append(b.events, Event{Type: evt, PC: pc})
}

func (b *signalBus) raiseEvent(evt EventType, pc uint16) {
	b.events = append(b.events, Event{Type: evt, PC: pc})
}

func (b *signalBus) drain() []Event {
	events := b.events
	b.events = nil
	return events
}

// framesPerCycleCap is the fixed T-cycle length of one 154-scanline Game
// Boy frame (154 * 456), used by RunFrame as a hard upper bound so a
// runaway HALT/interrupt loop can never spin the caller forever.
const framesPerCycleCap = 70224

// coreClockHz is the Game Boy's fixed T-cycle clock, used to convert a
// cycle count into elapsed wall-clock seconds.
const coreClockHz = 4194304.0

// EmulatorCore is the minimal orchestrator described by the hardware
// model: CPU, MMU (which owns PPU-adjacent bus routing, timer, serial,
// and the APU), PPU, and joypad wired together behind Step/RunFrame, with
// no dependency on a concrete display or audio backend. Emulator remains
// the higher-level façade SDL-backed commands build on; EmulatorCore is
// for callers - tests, headless tooling, alternative front ends - that
// want the bare stepping contract instead.
type EmulatorCore struct {
	CPU       *cpu.CPU
	MMU       *memory.MMU
	PPU       *ppu.PPU
	Joypad    *joypad.Joypad
	Cartridge cartridge.MBC

	Config DeviceConfig

	totalCycles uint64
	bus         signalBus
}

// NewEmulatorCore wires CPU, MMU, PPU, and joypad together the same way
// NewEmulator does, then seeds either the supplied boot ROM or, if none
// was given, the post-boot register snapshot matching config.Variant.
func NewEmulatorCore(mbc cartridge.MBC, bootROM []byte, config DeviceConfig) (*EmulatorCore, error) {
	if mbc == nil {
		return nil, gberr.Wrap(gberr.ErrBadCartridge, "emulator core: cartridge is required")
	}

	if len(bootROM) > 0 {
		want := dmgBootROMSize
		if config.Variant == VariantCGB {
			want = cgbBootROMSize
		}
		if len(bootROM) != want {
			return nil, gberr.Wrapf(gberr.ErrBadBootRom,
				"boot rom is %d bytes, want %d for %s", len(bootROM), want, config.Variant)
		}
	}

	if config.Variant == VariantDMG && requiresCGB(mbc) {
		return nil, gberr.Wrap(gberr.ErrUnsupportedFeature,
			"cartridge requires CGB hardware but config requests DMG")
	}

	coreCPU := cpu.NewCPU()
	ppuInstance := ppu.NewPPU()
	joypadInstance := joypad.NewJoypad()
	mmu := memory.NewMMU(mbc, coreCPU.InterruptController, joypadInstance)

	mmu.SetPPU(ppuInstance)
	ppuInstance.SetVRAMInterface(ppuInstance)

	cgb := config.Variant == VariantCGB && config.Mode != ModeDMGCompat
	mmu.SetCGBMode(cgb)
	mmu.GetAPU().SetCGBMode(cgb)

	core := &EmulatorCore{
		CPU:       coreCPU,
		MMU:       mmu,
		PPU:       ppuInstance,
		Joypad:    joypadInstance,
		Cartridge: mbc,
		Config:    config,
	}

	if len(bootROM) > 0 {
		mmu.SetBootROM(bootROM)
	} else {
		core.seedPostBootState()
	}

	return core, nil
}

// seedPostBootState installs the register snapshot a real boot ROM would
// have left behind, branching on device variant. The DMG branch checks
// headerChecksumZero to pick between F=0xB0 and the alternate F=0x80 the
// boot ROM leaves behind when the header checksum is zero.
func (c *EmulatorCore) seedPostBootState() {
	c.CPU.SetBC(0x0013)
	c.CPU.SetDE(0x00D8)
	c.CPU.SetHL(0x014D)
	c.CPU.SP = 0xFFFE
	c.CPU.PC = 0x0100
	c.CPU.Halted = false
	c.CPU.Stopped = false
	c.CPU.InterruptsEnabled = true

	timer := c.MMU.GetTimer()

	switch c.Config.Variant {
	case VariantCGB:
		c.CPU.A = 0x11
		c.CPU.F = 0x80
		timer.SeedPostBoot(0xAB00, 0x00, 0x00, 0xF8)
		c.MMU.WriteByte(0xFF40, 0x91) // LCDC
		c.MMU.WriteByte(0xFF41, 0x85) // STAT
	default:
		c.CPU.A = 0x01
		if c.headerChecksumZero() {
			c.CPU.F = 0x80
		} else {
			c.CPU.F = 0xB0
		}
	}
}

// headerChecksumZero reports whether the cartridge's boot-ROM validated
// header checksum is zero, the one condition under which the DMG boot
// ROM leaves F holding 0x80 instead of the usual 0xB0.
func (c *EmulatorCore) headerChecksumZero() bool {
	type headerChecksumReporter interface {
		HeaderChecksumZero() bool
	}
	if reporter, ok := c.Cartridge.(headerChecksumReporter); ok {
		return reporter.HeaderChecksumZero()
	}
	return false
}

// requiresCGB reports whether the cartridge declares itself CGB-exclusive
// (header byte 0x0143 == 0xC0). MBCs that don't expose this (unit-test
// doubles) are treated as DMG-compatible.
func requiresCGB(mbc cartridge.MBC) bool {
	type cgbRequirer interface {
		RequiresCGB() bool
	}
	if requirer, ok := mbc.(cgbRequirer); ok {
		return requirer.RequiresCGB()
	}
	return false
}

// TotalCycles returns the number of T-cycles executed since construction.
func (c *EmulatorCore) TotalCycles() uint64 {
	return c.totalCycles
}

// SecondsElapsed returns wall-clock-equivalent seconds of emulated time
// at the fixed Game Boy T-cycle rate, independent of double-speed mode
// (double speed halves real elapsed time per cycle, but TotalCycles
// already accounts for that at the call site that wants it).
func (c *EmulatorCore) SecondsElapsed() float64 {
	return float64(c.totalCycles) / coreClockHz
}

// Step advances the machine by exactly one CPU step: one dispatched
// instruction, one interrupt service routine, or a 4-cycle idle tick
// while halted or stopped. Every peripheral is advanced by the same
// number of cycles the CPU step consumed, pending interrupt bits raised
// during the step are folded into IF exactly once, and any notable
// occurrence is returned as an Event.
func (c *EmulatorCore) Step() (int, []Event, error) {
	if c.Config.DebugFlags.Breakpoints != nil && c.Config.DebugFlags.Breakpoints[c.CPU.PC] {
		c.bus.raiseEvent(EventBreakpointHit, c.CPU.PC)
	}

	cycles, err := c.dispatch()
	if err != nil {
		c.bus.raiseEvent(EventInvalidOpcode, c.CPU.PC)
		events := c.bus.drain()
		return 0, events, err
	}

	c.advancePeripherals(cycles)
	c.totalCycles += uint64(cycles)

	if c.bus.pendingInterrupts != 0 {
		c.CPU.InterruptController.SetInterruptFlag(
			c.CPU.InterruptController.GetInterruptFlag() | c.bus.pendingInterrupts)
		c.bus.pendingInterrupts = 0
	}

	return cycles, c.bus.drain(), nil
}

// dispatch performs the CPU-only half of one step: interrupt dispatch
// when due, a halted/stopped idle tick, or one fetch-decode-execute
// cycle. It returns the number of CPU T-cycles consumed.
func (c *EmulatorCore) dispatch() (int, error) {
	if c.CPU.Locked {
		return 4, nil
	}

	if c.CPU.Halted {
		if serviced := c.CPU.CheckAndServiceInterrupt(c.MMU); serviced > 0 {
			return int(serviced), nil
		}
		if c.CPU.InterruptController.HasPendingInterrupts() {
			c.CPU.Halted = false
		}
		return 4, nil
	}

	if c.CPU.Stopped {
		if c.CPU.InterruptController.IsInterruptPending(interrupt.InterruptJoypad) {
			c.CPU.Stopped = false
		}
		return 4, nil
	}

	if serviced := c.CPU.CheckAndServiceInterrupt(c.MMU); serviced > 0 {
		return int(serviced), nil
	}

	cycles, err := fetchDecodeExecute(c.CPU, c.MMU)
	if err != nil {
		return 0, err
	}
	c.CPU.ApplyPendingIME()
	return cycles, nil
}

// advancePeripherals steps every non-CPU subsystem by cycles T-cycles and
// raises signal-bus entries for whatever each one reports, but never
// writes IF directly - Step folds bus.pendingInterrupts in once, after
// every peripheral has had a chance to raise something.
func (c *EmulatorCore) advancePeripherals(cycles int) {
	ppuCycles := cycles
	if c.MMU.IsDoubleSpeed() {
		ppuCycles = cycles / 2
		if ppuCycles == 0 {
			ppuCycles = 1
		}
	}

	timer := c.MMU.GetTimer()
	timer.Update(uint8(cycles))
	if timer.HasTimerInterrupt() {
		c.bus.raiseInterrupt(interrupt.TimerMask, EventTimer, c.CPU.PC)
		timer.ClearTimerInterrupt()
	}

	serialPort := c.MMU.GetSerialPort()
	serialPort.Update(uint8(cycles))
	if serialPort.HasSerialInterrupt() {
		c.bus.raiseInterrupt(interrupt.SerialMask, EventSerial, c.CPU.PC)
		serialPort.ClearSerialInterrupt()
	}

	if c.Joypad.HasJoypadInterrupt() {
		c.bus.raiseInterrupt(interrupt.JoypadMask, EventJoypad, c.CPU.PC)
		c.Joypad.ClearJoypadInterrupt()
	}

	ppuInterruptRequested := c.PPU.Update(uint8(ppuCycles))
	if c.PPU.GetCurrentMode() == ppu.ModeHBlank {
		c.MMU.OnHBlankEntered()
	}
	if ppuInterruptRequested {
		c.raisePPUSignals()
	}

	c.MMU.GetAPU().Update(uint8(ppuCycles))
	c.MMU.UpdateDMA(uint8(cycles))
}

// raisePPUSignals turns a PPU-requested interrupt into the specific
// VBlank and/or LCDStat signal-bus entries it represents.
func (c *EmulatorCore) raisePPUSignals() {
	if c.PPU.GetCurrentScanline() == 144 && c.PPU.GetCurrentMode() == ppu.ModeVBlank {
		c.bus.raiseInterrupt(interrupt.VBlankMask, EventVBlank, c.CPU.PC)
	}
	if c.shouldTriggerLCDStatInterrupt() {
		c.bus.raiseInterrupt(interrupt.LCDStatMask, EventLCDStat, c.CPU.PC)
	}
}

// shouldTriggerLCDStatInterrupt mirrors the façade's simplified STAT
// interrupt condition: any of the four PPU modes configured in STAT to
// fire an interrupt, gated on the mode the PPU just reported.
func (c *EmulatorCore) shouldTriggerLCDStatInterrupt() bool {
	statValue := c.MMU.ReadByte(0xFF41)
	mode := c.PPU.GetCurrentMode()

	switch mode {
	case ppu.ModeHBlank:
		return statValue&0x08 != 0
	case ppu.ModeVBlank:
		return statValue&0x10 != 0
	case ppu.ModeOAMScan:
		return statValue&0x20 != 0
	default:
		return false
	}
}

// RunFrame steps the machine until the PPU reports frame completion
// (VBlank at scanline 144) or framesPerCycleCap T-cycles have elapsed,
// whichever comes first. The cap exists so a ROM that never reaches
// VBlank - an invalid opcode loop, LCD permanently disabled - cannot
// spin the caller forever.
func (c *EmulatorCore) RunFrame() (int, []Event, error) {
	totalCycles := 0
	var allEvents []Event

	for totalCycles < framesPerCycleCap {
		cycles, events, err := c.Step()
		totalCycles += cycles
		allEvents = append(allEvents, events...)
		if err != nil {
			return totalCycles, allEvents, err
		}

		for _, evt := range events {
			if evt.Type == EventVBlank {
				return totalCycles, allEvents, nil
			}
		}
	}

	return totalCycles, allEvents, nil
}
