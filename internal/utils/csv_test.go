package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeaderLine = "first_name,last_name,email,dob,gender,address,first_release_year,no_of_albums_released\n"

func TestParseArtistCSV(t *testing.T) {
	in := csvHeaderLine +
		"Nina,Simone,nina@example.com,1933-02-21,f,Tryon NC,1959,40\n" +
		"Miles,Davis,miles@example.com,1926-05-26,m,Alton IL,1946,60\n"

	rows, err := ParseArtistCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Nina", rows[0].FirstName)
	assert.Equal(t, "nina@example.com", rows[0].Email)
	assert.Equal(t, "f", rows[0].Gender)
	assert.Equal(t, 1959, rows[0].FirstReleaseYear)
	assert.Equal(t, time.Date(1933, 2, 21, 0, 0, 0, 0, time.UTC), rows[0].DOB)
	assert.Equal(t, 60, rows[1].AlbumsReleased)
}

func TestParseArtistCSVHeaderMismatch(t *testing.T) {
	in := "first_name,last_name,email\nNina,Simone,nina@example.com\n"
	_, err := ParseArtistCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestParseArtistCSVEmpty(t *testing.T) {
	_, err := ParseArtistCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = ParseArtistCSV(strings.NewReader(csvHeaderLine))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

// A single malformed row rejects the whole file, and the error names
// the offending line so the client can fix it.
func TestParseArtistCSVBadRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want string
	}{
		{"bad dob", "Nina,Simone,nina@example.com,21-02-1933,f,Tryon,1959,40", "dob"},
		{"bad gender", "Nina,Simone,nina@example.com,1933-02-21,x,Tryon,1959,40", "gender"},
		{"bad year", "Nina,Simone,nina@example.com,1933-02-21,f,Tryon,1800,40", "first_release_year"},
		{"bad email", "Nina,Simone,nope,1933-02-21,f,Tryon,1959,40", "email"},
		{"negative albums", "Nina,Simone,nina@example.com,1933-02-21,f,Tryon,1959,-2", "no_of_albums_released"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := csvHeaderLine +
				"Ella,Fitzgerald,ella@example.com,1917-04-25,f,Newport News,1936,70\n" +
				tc.row + "\n"
			_, err := ParseArtistCSV(strings.NewReader(in))
			require.Error(t, err)

			var rerr *RowError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, 2, rerr.Row)
			assert.Contains(t, rerr.Reason, tc.want)
		})
	}
}

func TestWriteArtistCSVRoundTrip(t *testing.T) {
	rows := []ArtistRow{
		{
			FirstName:        "Nina",
			LastName:         "Simone",
			Email:            "nina@example.com",
			DOB:              time.Date(1933, 2, 21, 0, 0, 0, 0, time.UTC),
			Gender:           "f",
			Address:          "Tryon NC",
			FirstReleaseYear: 1959,
			AlbumsReleased:   40,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArtistCSV(&buf, rows))

	parsed, err := ParseArtistCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, rows[0], parsed[0])
}
