package model

import "strings"

const shortHashLength = 7

// Commit represents a git commit enriched with changed files and line statistics
type Commit struct {
	Hash    string   `json:"hash"`
	Author  string   `json:"author"`
	Date    string   `json:"date"`
	Message string   `json:"message"`
	Body    string   `json:"body"`
	Files   []string `json:"files"`

	// Statistics
	Stats CommitStats `json:"stats"`
}

// ShortHash returns abbreviated commit hash
func (c Commit) ShortHash() string {
	if len(c.Hash) <= shortHashLength {
		return c.Hash
	}
	return c.Hash[:shortHashLength]
}

// CommitStats represents commit statistics
type CommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Add sums stats of a single file into the commit totals
func (s *CommitStats) Add(fs FileStat) {
	s.Additions += fs.Additions
	s.Deletions += fs.Deletions
}

// FileStat is a parsed numstat line for a single file
type FileStat struct {
	Path      string
	Additions int
	Deletions int
	Binary    bool
}

// RawCommit is a commit as returned by a history query, before files and stats are attached
type RawCommit struct {
	Hash    string
	Author  string
	Date    string
	Message string
	Body    string
}

// ToCommit creates a commit without files and stats
func (r RawCommit) ToCommit() Commit {
	return Commit{
		Hash:    r.Hash,
		Author:  r.Author,
		Date:    r.Date,
		Message: r.Message,
		Body:    strings.TrimSpace(r.Body),
		Files:   []string{},
	}
}

// LogQuery filters history. Dates are in YYYY-MM-DD form, empty means unbounded.
// MaxCount of zero means no limit.
type LogQuery struct {
	Since    string
	Until    string
	MaxCount int
}

// DateRange is an inclusive window of dates used to name and describe a changelog
type DateRange struct {
	Start string
	End   string
}

// IsFull returns true if both bounds are set
func (r DateRange) IsFull() bool {
	return r.Start != "" && r.End != ""
}

// SplitMessage splits full commit message into subject line and body
func SplitMessage(message string) (subject, body string) {
	message = strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n"))
	subject, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}
