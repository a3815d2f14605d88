// Package importer turns a spreadsheet of mentees into Person records.
//
// The first sheet is read; its first non-blank row is the header. Parsing is
// all-or-nothing: on any structural problem Parse returns a *ParseError and no
// records.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mmynk/mentorboard/internal/models"
)

// PlaceholderName is used for rows without a name.
const PlaceholderName = "Nome não informado"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoSheet           = errors.New("workbook has no sheets")
	ErrNoHeader          = errors.New("sheet has no header row")
)

// ParseError reports why a file could not be imported.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to import %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// column is a recognized Person field.
type column int

const (
	colName column = iota
	colSocialHandle
	colMentor
	colInitialFee
	colCurrentFee
	colJoinDate
)

// headerAliases maps normalized header text to a column.
var headerAliases = map[string]column{
	"name":               colName,
	"nome":               colName,
	"socialhandle":       colSocialHandle,
	"instagram":          colSocialHandle,
	"assignedmentorname": colMentor,
	"mentor":             colMentor,
	"initialfee":         colInitialFee,
	"cacheinicial":       colInitialFee,
	"currentfee":         colCurrentFee,
	"cacheatual":         colCurrentFee,
	"joindate":           colJoinDate,
	"dataentrada":        colJoinDate,
	"datadeentrada":      colJoinDate,
}

// headerKey normalizes a header cell: "Cache Inicial" and "cache_inicial" both read "cacheinicial".
func headerKey(cell string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(cell)))
}

// Parse reads data according to the extension of filename.
func Parse(filename string, data []byte) ([]models.Person, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(data)
	case ".xls":
		rows, err = readXLS(data)
	case ".csv":
		rows, err = readCSV(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	people, err := FromRows(rows)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	return people, nil
}

// FromRows converts a header row and data rows into mentees.
// Leading and fully blank rows are skipped.
func FromRows(rows [][]string) ([]models.Person, error) {
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoHeader
	}

	header := map[column]int{}
	for i, cell := range rows[start] {
		if col, ok := headerAliases[headerKey(cell)]; ok {
			if _, seen := header[col]; !seen {
				header[col] = i
			}
		}
	}

	people := []models.Person{}
	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		people = append(people, toPerson(row, header))
	}
	return people, nil
}

func toPerson(row []string, header map[column]int) models.Person {
	cell := func(col column) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell(colName)
	if name == "" {
		name = PlaceholderName
	}

	p := models.NewPerson(name, cell(colSocialHandle), false)
	if mentor := cell(colMentor); mentor != "" {
		p.AssignedMentor = models.StringPtr(mentor)
	}
	p.InitialFee = parseNumber(cell(colInitialFee))
	p.CurrentFee = parseNumber(cell(colCurrentFee))
	if p.CurrentFee == 0 {
		p.CurrentFee = p.InitialFee
	}
	if date := cell(colJoinDate); date != "" {
		p.JoinDate = models.StringPtr(date)
	}
	return p
}

// parseNumber reads "1500", "1500.50", "1.500,50" and "R$ 1.500,50".
// Anything else, and negative values, read as zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
