package picker

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_FixedList(t *testing.T) {
	var exts []string
	for _, f := range Filters {
		exts = append(exts, f.Ext)
	}
	assert.Equal(t, []string{".png", ".jpeg", ".jpg", ".gif", ".bmp", ".txt", ".docx", ".xlsx", ".py"}, exts)
	assert.Equal(t, "PNG Files (*.png)", Options()[0])
	assert.Equal(t, "Python Files (*.py)", Options()[len(Filters)-1])
}

func TestLookup(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"PNG Files (*.png)", ".png", true},
		{"jpg", ".jpg", true},
		{".XLSX", ".xlsx", true},
		{"*.py", ".py", true},
		{"webp", ".png", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, ok := Lookup(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, f.Ext)
		})
	}
}

func TestCollect_FiltersAndSorts(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/shots"
	for _, name := range []string{"c.png", "a.PNG", "b.png", "notes.txt", "d.jpg"} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "sub.png"), 0o755))

	png, _ := Lookup("png")
	got, err := Collect(fs, dir, png)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.PNG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.png"),
	}, got)

	txt, _ := Lookup("txt")
	got, err = Collect(fs, dir, txt)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, got)
}

func TestCollect_MissingDir(t *testing.T) {
	_, err := Collect(afero.NewMemMapFs(), "/nope", Filters[0])
	assert.Error(t, err)
}
