package history

import (
	"strconv"
	"strings"

	"github.com/maxbolgarin/changry/internal/model"
)

// binaryMarker is what git prints instead of line counts for binary files
const binaryMarker = "-"

// ParseNumStatLine parses "<additions>\t<deletions>\t<path>" line.
// It returns false if the line doesn't start with two non-negative integers,
// e.g. for binary files where git prints "-\t-\tpath".
func ParseNumStatLine(line string) (model.FileStat, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.FileStat{}, false
	}

	stat := model.FileStat{Path: numStatPath(line, fields)}

	additions, errAdd := strconv.Atoi(fields[0])
	deletions, errDel := strconv.Atoi(fields[1])
	if errAdd != nil || errDel != nil || additions < 0 || deletions < 0 {
		stat.Binary = fields[0] == binaryMarker && fields[1] == binaryMarker
		return stat, false
	}

	stat.Additions = additions
	stat.Deletions = deletions

	return stat, true
}

// SumNumStat sums all parsable numstat lines, the rest is ignored
func SumNumStat(lines []string) model.CommitStats {
	var stats model.CommitStats
	for _, line := range lines {
		if fs, ok := ParseNumStatLine(line); ok {
			stats.Add(fs)
		}
	}
	return stats
}

func numStatPath(line string, fields []string) string {
	parts := strings.SplitN(strings.TrimSpace(line), "\t", 3)
	if len(parts) == 3 {
		return parts[2]
	}
	return strings.Join(fields[2:], " ")
}
