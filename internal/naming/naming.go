// Package naming turns an original file path and its position in a batch
// into the file's new name.
package naming

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"
)

/* -------------------- Modes -------------------- */

type Mode int

const (
	Sequential Mode = iota
	Timestamp
	Random
)

var modeNames = [...]string{"sequential", "timestamp", "random"}
var modeLabels = [...]string{"Sequential", "Timestamp", "Random"}

// Modes lists every mode in display order.
func Modes() []Mode { return []Mode{Sequential, Timestamp, Random} }

// Labels returns the display labels of Modes, in the same order.
func Labels() []string { return append([]string(nil), modeLabels[:]...) }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) Label() string {
	if m < 0 || int(m) >= len(modeLabels) {
		return m.String()
	}
	return modeLabels[m]
}

// ParseMode accepts either the lower-case name or the display label.
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if v == n {
			return Mode(i), nil
		}
	}
	return Sequential, fmt.Errorf("unknown naming mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

/* -------------------- Namer -------------------- */

const (
	TimestampLayout = "2006-01-02 15:04:05"
	TokenLength     = 12
	tokenAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Namer computes new names for one run. Now and Token default to the
// wall clock and a crypto/rand token.
type Namer struct {
	Prefix string
	Mode   Mode
	Now    func() time.Time
	Token  func() string
}

// Name returns the new base name for the file at path, seq being its
// 1-based position in the batch.
//
// Timestamp names have one-second resolution: files renamed within the
// same second get the same name and the later rename replaces the
// earlier file.
func (n Namer) Name(path string, seq int) string {
	ext := filepath.Ext(path)
	switch n.Mode {
	case Timestamp:
		stamp := n.now().Format(TimestampLayout)
		return n.Prefix + strings.ReplaceAll(stamp, " ", "_") + ext
	case Random:
		return n.token() + ext
	default:
		return fmt.Sprintf("%s%03d%s", n.Prefix, seq, ext)
	}
}

// Target is Name joined onto the file's own directory.
func (n Namer) Target(path string, seq int) string {
	return filepath.Join(filepath.Dir(path), n.Name(path, seq))
}

func (n Namer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n Namer) token() string {
	if n.Token != nil {
		return n.Token()
	}
	return NewToken()
}

// NewToken returns TokenLength characters drawn from [A-Z0-9].
func NewToken() string {
	var b strings.Builder
	b.Grow(TokenLength)
	size := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < TokenLength; i++ {
		r, err := rand.Int(rand.Reader, size)
		if err != nil {
			panic(fmt.Sprintf("naming: read random: %v", err))
		}
		b.WriteByte(tokenAlphabet[r.Int64()])
	}
	return b.String()
}
