package naming

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFiles(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, []byte(p), 0o644))
	}
	return fs
}

func TestBuildPlan_Sequential(t *testing.T) {
	files := []string{"/in/a.png", "/in/b.png", "/in/c.png"}
	fs := memFiles(t, files...)

	p := BuildPlan(fs, files, Namer{Prefix: "img_", Mode: Sequential})

	require.Len(t, p.Items, 3)
	assert.True(t, p.Clean())
	for i, want := range []string{"img_001.png", "img_002.png", "img_003.png"} {
		assert.Equal(t, i+1, p.Items[i].Seq)
		assert.Equal(t, want, p.Items[i].NewName)
		assert.Equal(t, "/in/"+want, p.Items[i].NewPath)
		assert.Empty(t, p.Items[i].Warning)
	}
}

func TestBuildPlan_TimestampDuplicates(t *testing.T) {
	files := []string{"/in/a.jpg", "/in/b.jpg"}
	fs := memFiles(t, files...)

	p := BuildPlan(fs, files, Namer{Prefix: "s_", Mode: Timestamp, Now: fixedNow})

	assert.False(t, p.Clean())
	assert.Len(t, p.Duplicate, 2)
	for _, it := range p.Items {
		assert.Equal(t, "conflict: duplicate name", it.Warning)
	}
	assert.Contains(t, p.Summary(), "Duplicate names")
}

func TestBuildPlan_TargetExists(t *testing.T) {
	files := []string{"/in/a.png", "/in/b.png"}
	fs := memFiles(t, append(files, "/in/img_002.png")...)

	p := BuildPlan(fs, files, Namer{Prefix: "img_", Mode: Sequential})

	assert.Empty(t, p.Items[0].Warning)
	assert.Equal(t, "target exists", p.Items[1].Warning)
	assert.Equal(t, []string{"b.png → img_002.png"}, p.TargetExists)
}

func TestBuildPlan_TargetIsLaterBatchFile(t *testing.T) {
	// a.png takes img_001.png before that file has been renamed itself
	files := []string{"/in/a.png", "/in/img_001.png"}
	fs := memFiles(t, files...)

	p := BuildPlan(fs, files, Namer{Prefix: "img_", Mode: Sequential})

	assert.Equal(t, "target exists", p.Items[0].Warning)
	assert.Empty(t, p.Items[1].Warning)
}

func TestBuildPlan_TargetIsEarlierBatchFile(t *testing.T) {
	files := []string{"/in/img_002.png", "/in/b.png"}
	fs := memFiles(t, files...)

	p := BuildPlan(fs, files, Namer{Prefix: "img_", Mode: Sequential})

	assert.True(t, p.Clean())
}

func TestBuildPlan_Invalid(t *testing.T) {
	files := []string{"/in/a.png"}
	fs := memFiles(t, files...)

	p := BuildPlan(fs, files, Namer{Prefix: "a|b", Mode: Sequential})

	assert.Equal(t, "invalid characters", p.Items[0].Warning)
	assert.Contains(t, p.Summary(), "a.png → a|b001.png (invalid characters)")
}

func TestPlanSummary_Truncates(t *testing.T) {
	p := Plan{Mode: Timestamp}
	for i := 0; i < 25; i++ {
		p.Items = append(p.Items, PlanItem{})
		p.Duplicate = append(p.Duplicate, "x")
	}
	s := p.Summary()
	assert.Contains(t, s, "rename 25 file(s) using Timestamp naming")
	assert.Contains(t, s, " ... and 5 more")
	assert.Contains(t, s, "Proceed?")
}
