// Package gberr defines the error taxonomy shared across the emulator core.
//
// Components return one of the sentinel kinds below wrapped with a detail
// string; callers branch on kind with errors.Is rather than matching
// strings. Runtime errors discovered mid-step (an invalid opcode) are
// recorded as an event by the orchestrator instead of propagated as a Go
// error - they must not stop emulation.
package gberr

import (
	"errors"
	"fmt"
)

// Kind sentinels. Compare with errors.Is, e.g. errors.Is(err, ErrBadCartridge).
var (
	// ErrBadCartridge covers header checksum mismatches, unknown MBC
	// types and truncated ROM images.
	ErrBadCartridge = errors.New("bad cartridge")

	// ErrBadBootRom covers boot ROM images of the wrong length or
	// targeting the wrong device variant.
	ErrBadBootRom = errors.New("bad boot rom")

	// ErrIOFailure covers storage that cannot be read or written.
	ErrIOFailure = errors.New("io failure")

	// ErrUnsupportedFeature covers a CGB-only cartridge run on a DMG
	// configuration (or vice versa) without a forced compatibility mode.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrInvalidOpcode covers one of the eleven undefined base opcodes.
	// The CPU locks and an event is raised; the core does not panic.
	ErrInvalidOpcode = errors.New("invalid opcode")
)

// Wrap attaches a detail message to a sentinel kind so the result still
// satisfies errors.Is(result, kind) while carrying human-readable context.
func Wrap(kind error, detail string) error {
	return fmt.Errorf("%s: %w", detail, kind)
}

// Wrapf is Wrap with fmt.Sprintf-style formatting of the detail message.
func Wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
