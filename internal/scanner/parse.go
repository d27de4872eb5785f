package scanner

import (
	"regexp"
	"strings"
	"time"

	"github.com/rgould/projdex/internal/domain/catalog"
)

// shortNumberWidth is the fixed suffix width used for short project numbers.
const shortNumberWidth = 3

var (
	// Year directories are underscore-prefixed labels carrying a two- or
	// four-digit year, e.g. "_24 Projects" or "_2024".
	yearDirPattern = regexp.MustCompile(`^_\s*(\d{4}|\d{2})\b`)

	// Numbering scheme 1: seven digits, dot, three-digit phase suffix,
	// optionally followed by a label, e.g. "2024638.001 Palm Beach Club".
	// The first four digits are the project year.
	numberedFolderPattern = regexp.MustCompile(`^(\d{7})\.(\d{3})(?:[\s_-]+(.+))?$`)

	// Numbering scheme 2 (legacy): short alpha prefix, two-digit year and a
	// serial, e.g. "PB24-101 Clubhouse Renovation".
	prefixedFolderPattern = regexp.MustCompile(`^([A-Za-z]{1,4})(\d{2})[-.](\d{2,4})(?:[\s_-]+(.+))?$`)
)

// parseYearDirName extracts the four-digit year from a year-directory name.
func parseYearDirName(name string) (string, bool) {
	m := yearDirPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	year := m[1]
	if len(year) == 2 {
		year = "20" + year
	}
	return year, true
}

// TryParseProjectFolder applies the project-number recognition patterns to a
// folder name. It returns nil when the name matches neither scheme; that is
// the expected outcome for most folders, not an error. The year argument
// comes from the containing year directory and may be empty, in which case
// the year is derived from the number itself.
func TryParseProjectFolder(dirName, fullPath, year string, loc catalog.DriveLocation) *catalog.ProjectRecord {
	if m := numberedFolderPattern.FindStringSubmatch(dirName); m != nil {
		base, suffix, label := m[1], m[2], m[3]
		full := base + "." + suffix
		if year == "" {
			year = base[:4]
		}
		return newRecord(full, shortNumber(base), year, label, fullPath, loc)
	}

	if m := prefixedFolderPattern.FindStringSubmatch(dirName); m != nil {
		prefix, yy, serial, label := m[1], m[2], m[3], m[4]
		full := strings.ToUpper(prefix) + yy + "-" + serial
		if year == "" {
			year = "20" + yy
		}
		return newRecord(full, shortNumber(serial), year, label, fullPath, loc)
	}

	return nil
}

func newRecord(full, short, year, label, fullPath string, loc catalog.DriveLocation) *catalog.ProjectRecord {
	return &catalog.ProjectRecord{
		ID: catalog.ProjectID(full),
		ProjectIdentity: catalog.ProjectIdentity{
			FullNumber:  full,
			ShortNumber: short,
			Year:        year,
		},
		Name:          strings.TrimSpace(label),
		Path:          fullPath,
		DriveLocation: loc,
		LastScanned:   time.Now().UTC(),
	}
}

// shortNumber returns the fixed-width trailing digits of a number's base,
// e.g. "2024638" -> "638".
func shortNumber(base string) string {
	digits := make([]byte, 0, len(base))
	for i := 0; i < len(base); i++ {
		if base[i] >= '0' && base[i] <= '9' {
			digits = append(digits, base[i])
		}
	}
	if len(digits) <= shortNumberWidth {
		return string(digits)
	}
	return string(digits[len(digits)-shortNumberWidth:])
}
