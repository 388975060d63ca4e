package story

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMDY(t *testing.T) {
	d, err := ParseMDY("10/03/17")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2017, Month: 10, Day: 3}, d)

	d, err = ParseMDY("03/17/97")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 1997, Month: 3, Day: 17}, d)
}

func TestParseMDY_CenturyPivot(t *testing.T) {
	d, err := ParseMDY("01/01/50")
	require.NoError(t, err)
	assert.Equal(t, 2050, d.Year)

	d, err = ParseMDY("01/01/51")
	require.NoError(t, err)
	assert.Equal(t, 1951, d.Year)

	d, err = ParseMDY("01/01/00")
	require.NoError(t, err)
	assert.Equal(t, 2000, d.Year)
}

func TestParseMDY_Invalid(t *testing.T) {
	for _, s := range []string{"", "10/03/2017", "13/01/17", "00/10/17", "10/32/17", "1a/03/17", "10-03-17"} {
		_, err := ParseMDY(s)
		assert.Error(t, err, s)
	}
}

func TestParseYMD(t *testing.T) {
	d, err := ParseYMD("2017/10/03")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2017, Month: 10, Day: 3}, d)

	d, err = ParseYMD("1997/03/17")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 1997, Month: 3, Day: 17}, d)
}

func TestDate_RoundTrip(t *testing.T) {
	for _, year := range []int{1, 1951, 1999, 2000, 2017, 2050, 9999} {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 31; day++ {
				want := Date{Year: year, Month: month, Day: day}

				got, err := ParseYMD(want.String())
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestParseDate_FallsBackToYMD(t *testing.T) {
	d, err := ParseDate("10/03/17")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2017, Month: 10, Day: 3}, d)

	d, err = ParseDate("2017/10/03")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2017, Month: 10, Day: 3}, d)
}

func TestParseDate_Error(t *testing.T) {
	_, err := ParseDate("yesterday")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDateParse))
	assert.Contains(t, err.Error(), "yesterday")
}

func TestDate_Compare(t *testing.T) {
	a := Date{Year: 2017, Month: 10, Day: 3}
	b := Date{Year: 2017, Month: 11, Day: 1}
	c := Date{Year: 2018, Month: 1, Day: 1}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, "2017/10/03", a.String())
}
