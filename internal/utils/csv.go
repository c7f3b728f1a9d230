package utils

// csv.go implements the fixed header-to-field mapping used by artist
// import and export. Parsing validates every row up front so that bulk
// import can refuse a file before issuing a single database write.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// artistCSVHeader is the canonical column order for artist CSV files,
// shared by import (expected header) and export (written header).
var artistCSVHeader = []string{
	"first_name",
	"last_name",
	"email",
	"dob",
	"gender",
	"address",
	"first_release_year",
	"no_of_albums_released",
}

// dobLayout is the on-disk date format for the dob column.
const dobLayout = "2006-01-02"

// ArtistRow is one parsed and validated line of an artist CSV file.
type ArtistRow struct {
	FirstName        string
	LastName         string
	Email            string
	DOB              time.Time
	Gender           string
	Address          string
	FirstReleaseYear int
	AlbumsReleased   int
}

// RowError describes a validation failure in a specific CSV line. Row
// numbering starts at 1 for the first data line (the header is line 0).
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ParseArtistCSV reads an artist CSV file and returns its rows. The
// header must match artistCSVHeader exactly (case-insensitive). Any
// malformed row aborts parsing with a *RowError identifying the line,
// so callers can reject the whole file before writing anything.
func ParseArtistCSV(r io.Reader) ([]ArtistRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, err
	}
	if len(header) != len(artistCSVHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(artistCSVHeader), len(header))
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), artistCSVHeader[i]) {
			return nil, fmt.Errorf("unexpected column %q at position %d (want %q)", h, i+1, artistCSVHeader[i])
		}
	}

	var rows []ArtistRow
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Row: n, Reason: err.Error()}
		}
		row, rerr := parseArtistRecord(rec)
		if rerr != "" {
			return nil, &RowError{Row: n, Reason: rerr}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return rows, nil
}

// parseArtistRecord validates one record and returns either the parsed
// row or a human-readable reason for rejection.
func parseArtistRecord(rec []string) (ArtistRow, string) {
	var row ArtistRow
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row.FirstName = rec[0]
	row.LastName = rec[1]
	row.Email = strings.ToLower(rec[2])
	row.Gender = strings.ToLower(rec[4])
	row.Address = rec[5]

	if row.FirstName == "" || row.LastName == "" {
		return row, "first_name and last_name are required"
	}
	if row.Email == "" || !strings.Contains(row.Email, "@") {
		return row, fmt.Sprintf("invalid email %q", rec[2])
	}
	dob, err := time.Parse(dobLayout, rec[3])
	if err != nil {
		return row, fmt.Sprintf("invalid dob %q (want YYYY-MM-DD)", rec[3])
	}
	row.DOB = dob
	switch row.Gender {
	case "m", "f", "o":
	default:
		return row, fmt.Sprintf("invalid gender %q (want m, f or o)", rec[4])
	}
	if row.Address == "" {
		return row, "address is required"
	}
	year, err := strconv.Atoi(rec[6])
	if err != nil || year < 1900 {
		return row, fmt.Sprintf("invalid first_release_year %q", rec[6])
	}
	row.FirstReleaseYear = year
	albums, err := strconv.Atoi(rec[7])
	if err != nil || albums < 0 {
		return row, fmt.Sprintf("invalid no_of_albums_released %q", rec[7])
	}
	row.AlbumsReleased = albums
	return row, ""
}

// WriteArtistCSV writes rows using the canonical header. It is used by
// the export endpoint; the same mapping round-trips through import.
func WriteArtistCSV(w io.Writer, rows []ArtistRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(artistCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.FirstName,
			row.LastName,
			row.Email,
			row.DOB.Format(dobLayout),
			row.Gender,
			row.Address,
			strconv.Itoa(row.FirstReleaseYear),
			strconv.Itoa(row.AlbumsReleased),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
