package history

import (
	"testing"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestParseNumStatLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.FileStat
		ok   bool
	}{
		{
			name: "regular file",
			line: "10\t2\tfoo.ts",
			want: model.FileStat{Path: "foo.ts", Additions: 10, Deletions: 2},
			ok:   true,
		},
		{
			name: "path with spaces",
			line: "1\t0\tdocs/my file.md",
			want: model.FileStat{Path: "docs/my file.md", Additions: 1},
			ok:   true,
		},
		{
			name: "rename",
			line: "3\t3\tsrc/{old => new}.go",
			want: model.FileStat{Path: "src/{old => new}.go", Additions: 3, Deletions: 3},
			ok:   true,
		},
		{
			name: "binary",
			line: "-\t-\timage.png",
			want: model.FileStat{Path: "image.png", Binary: true},
		},
		{
			name: "garbage",
			line: "abc\t1\tfile",
			want: model.FileStat{Path: "file"},
		},
		{
			name: "negative",
			line: "-1\t2\tfile",
			want: model.FileStat{Path: "file"},
		},
		{
			name: "empty",
			line: "",
		},
		{
			name: "single field",
			line: "12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumStatLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumNumStat(t *testing.T) {
	stats := SumNumStat([]string{"10\t2\tfoo.ts", "5\t0\tbar.css"})
	assert.Equal(t, model.CommitStats{Additions: 15, Deletions: 2}, stats)

	t.Run("binary contributes zero", func(t *testing.T) {
		stats := SumNumStat([]string{"10\t2\tfoo.ts", "-\t-\tlogo.png", "", "oops"})
		assert.Equal(t, model.CommitStats{Additions: 10, Deletions: 2}, stats)
	})

	t.Run("order independent", func(t *testing.T) {
		lines := []string{"1\t9\ta", "7\t0\tb", "-\t-\tc", "3\t4\td"}
		reversed := []string{lines[3], lines[2], lines[1], lines[0]}
		assert.Equal(t, SumNumStat(lines), SumNumStat(reversed))
		assert.Equal(t, model.CommitStats{Additions: 11, Deletions: 13}, SumNumStat(lines))
	})

	t.Run("no lines", func(t *testing.T) {
		assert.Equal(t, model.CommitStats{}, SumNumStat(nil))
	})
}
