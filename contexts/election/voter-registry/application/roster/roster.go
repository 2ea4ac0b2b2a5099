// Package roster maps raw tabular rows onto registry roster rows. The
// interactive upload route and the offline import command both flatten
// their sheets into this form, so validation lives in one place: the
// registry's bulk-create path.
package roster

import (
	"strings"

	"campusvote/contexts/election/voter-registry/application/commands"
)

// Recognized header aliases per field, matched case-insensitively after
// trimming. The odd entries mirror headers observed in real department
// rosters.
var (
	regNoAliases   = []string{"reg_no", "registration_no", "regno", "register number"}
	nameAliases    = []string{"name", "student_name", "student name"}
	emailAliases   = []string{"email", "email_id", "email id", "student sonatech mail id"}
	yearAliases    = []string{"year", "academic_year", "academic year"}
	sectionAliases = []string{"section", "sec"}
	deptAliases    = []string{"dept", "department", "branch"}
)

// MapRow resolves one raw row into a roster row. Missing fields stay
// empty; the registry's validation reports them per row number.
func MapRow(raw map[string]string, rowNum int, sheet string) commands.RosterRow {
	normalized := make(map[string]string, len(raw))
	for header, value := range raw {
		normalized[strings.ToLower(strings.TrimSpace(header))] = strings.TrimSpace(value)
	}
	return commands.RosterRow{
		RowNum:     rowNum,
		Sheet:      sheet,
		RegNo:      pick(normalized, regNoAliases),
		Name:       pick(normalized, nameAliases),
		Email:      pick(normalized, emailAliases),
		Year:       pick(normalized, yearAliases),
		Section:    pick(normalized, sectionAliases),
		Department: pick(normalized, deptAliases),
	}
}

// MapSheet converts an ordered header row plus data rows into roster rows.
// Row numbers start at 2 to match the spreadsheet convention of a header
// line on row 1.
func MapSheet(headers []string, rows [][]string, sheet string) []commands.RosterRow {
	out := make([]commands.RosterRow, 0, len(rows))
	for i, row := range rows {
		raw := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(row) {
				raw[header] = row[j]
			}
		}
		out = append(out, MapRow(raw, i+2, sheet))
	}
	return out
}

func pick(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}
