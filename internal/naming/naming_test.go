package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
}

func TestName_Sequential(t *testing.T) {
	n := Namer{Prefix: "img_", Mode: Sequential}
	tests := []struct {
		path string
		seq  int
		want string
	}{
		{"/photos/a.png", 1, "img_001.png"},
		{"/photos/b.png", 2, "img_002.png"},
		{"/photos/c.png", 3, "img_003.png"},
		{"/photos/report.docx", 42, "img_042.docx"},
		{"/photos/archive.tar.gz", 7, "img_007.gz"},
		{"/photos/README", 999, "img_999"},
		{"/photos/big.txt", 1000, "img_1000.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Name(tt.path, tt.seq))
		})
	}
}

func TestName_SequentialDistinctUpTo999(t *testing.T) {
	n := Namer{Prefix: "x", Mode: Sequential}
	seen := make(map[string]bool, 999)
	for i := 1; i <= 999; i++ {
		name := n.Name(fmt.Sprintf("/d/f%d.txt", i), i)
		require.Falsef(t, seen[name], "duplicate name %s at %d", name, i)
		seen[name] = true
		assert.Equal(t, fmt.Sprintf("x%03d.txt", i), name)
	}
}

func TestName_Timestamp(t *testing.T) {
	n := Namer{Prefix: "shot_", Mode: Timestamp, Now: fixedNow}
	assert.Equal(t, "shot_2024-03-09_14:05:07.jpg", n.Name("/p/a.jpg", 1))
}

func TestName_TimestampCollidesWithinSameSecond(t *testing.T) {
	n := Namer{Prefix: "shot_", Mode: Timestamp, Now: fixedNow}
	a := n.Target("/p/a.jpg", 1)
	b := n.Target("/p/b.jpg", 2)
	assert.Equal(t, a, b, "files renamed in the same second share a target")
}

func TestName_Random(t *testing.T) {
	n := Namer{Prefix: "ignored_", Mode: Random}
	body := regexp.MustCompile(`^[A-Z0-9]{12}$`)
	for i := 1; i <= 50; i++ {
		name := n.Name("/p/file.png", i)
		require.Equal(t, ".png", filepath.Ext(name))
		stem := name[:len(name)-len(".png")]
		assert.Regexp(t, body, stem)
		assert.NotContains(t, name, "ignored_")
	}
}

func TestName_RandomUsesTokenFunc(t *testing.T) {
	n := Namer{Prefix: "p", Mode: Random, Token: func() string { return "ABCDEF123456" }}
	assert.Equal(t, "ABCDEF123456.xlsx", n.Name("/p/sheet.xlsx", 1))
}

func TestTarget_KeepsDirectory(t *testing.T) {
	n := Namer{Prefix: "img_", Mode: Sequential}
	got := n.Target(filepath.Join("photos", "trip", "a.png"), 5)
	assert.Equal(t, filepath.Join("photos", "trip", "img_005.png"), got)
}

func TestNewToken(t *testing.T) {
	tok := NewToken()
	assert.Len(t, tok, TokenLength)
	assert.Regexp(t, `^[A-Z0-9]+$`, tok)
	assert.NotEqual(t, tok, NewToken())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"sequential", Sequential, false},
		{"Timestamp", Timestamp, false},
		{" random ", Random, false},
		{"RANDOM", Random, false},
		{"", Sequential, true},
		{"uuid", Sequential, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("timestamp")))
	assert.Equal(t, Timestamp, m)
	b, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "timestamp", string(b))
	assert.Error(t, m.UnmarshalText([]byte("nope")))

	assert.Equal(t, []string{"Sequential", "Timestamp", "Random"}, Labels())
	for i, m := range Modes() {
		assert.Equal(t, Labels()[i], m.Label())
	}
	assert.Equal(t, "mode(9)", Mode(9).String())
}

func TestInvalidReason(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"img_001.png", ""},
		{"   ", "empty name"},
		{"a:b.png", "invalid characters"},
		{"what?.txt", "invalid characters"},
		{"con.txt", "reserved filename"},
		{"LPT1", "reserved filename"},
		{"console.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InvalidReason(tt.name))
		})
	}
}
