package qrbyte

import (
	"fmt"
	"strings"

	"github.com/RashadAnsari/qrbyte/internal/tables"
)

// RecoveryLevel is the error correction level. From least to most
// tolerant of damage: Low, Medium, High, Highest.
type RecoveryLevel int

const (
	// Level L: 7% error recovery.
	Low RecoveryLevel = iota

	// Level M: 15% error recovery. Good default choice.
	Medium

	// Level Q: 25% error recovery.
	High

	// Level H: 30% error recovery.
	Highest
)

func (l RecoveryLevel) valid() bool {
	return l >= Low && l <= Highest
}

// String returns the ISO/IEC 18004 letter for the level.
func (l RecoveryLevel) String() string {
	if !l.valid() {
		return fmt.Sprintf("RecoveryLevel(%d)", int(l))
	}

	return "LMQH"[l : l+1]
}

// ParseLevel parses one of "L", "M", "Q" or "H", ignoring case.
func ParseLevel(s string) (RecoveryLevel, error) {
	i := strings.Index("LMQH", strings.ToUpper(s))
	if len(s) != 1 || i < 0 {
		return 0, fmt.Errorf("unknown recovery level %q", s)
	}

	return RecoveryLevel(i), nil
}

func (l RecoveryLevel) tableLevel() tables.Level {
	return tables.Level(l)
}

// formatBits returns the 2 bit level code used in format information.
func (l RecoveryLevel) formatBits() uint16 {
	return [...]uint16{Low: 0b01, Medium: 0b00, High: 0b11, Highest: 0b10}[l]
}
