package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() BookInput {
	return BookInput{
		Title:         "Dune",
		AuthorSurname: "Herbert",
	}
}

func TestBookInput_Validate_OK(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestBookInput_Validate_MissingTitle(t *testing.T) {
	in := validInput()
	in.Title = ""

	err := in.Validate()

	require.Error(t, err)
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "Title", ve.Fields[0].Field)
	assert.Contains(t, err.Error(), "Title is required")
}

func TestBookInput_Validate_WhitespaceOnlyTitle(t *testing.T) {
	in := validInput()
	in.Title = "   "

	err := in.Validate()

	require.Error(t, err)
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Title", ve.Fields[0].Field)
}

func TestBookInput_Validate_WhitespaceOnlySurname(t *testing.T) {
	in := validInput()
	in.AuthorSurname = " \t "

	err := in.Validate()

	require.Error(t, err)
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "AuthorSurname", ve.Fields[0].Field)
}

func TestBookInput_Validate_MissingSurname(t *testing.T) {
	in := validInput()
	in.AuthorSurname = ""

	err := in.Validate()

	require.Error(t, err)
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "AuthorSurname", ve.Fields[0].Field)
}

func TestBookInput_Validate_CollectsAllFields(t *testing.T) {
	year := -5
	pages := 0
	in := BookInput{Year: &year, PageCount: &pages}

	err := in.Validate()

	require.Error(t, err)
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 4)
}

func TestBookInput_Validate_YearRange(t *testing.T) {
	in := validInput()
	tooLate := 10000
	in.Year = &tooLate

	err := in.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Year is out of range")
}

func TestBookInput_Validate_PageCountPositive(t *testing.T) {
	in := validInput()
	zero := 0
	in.PageCount = &zero

	err := in.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PageCount must be positive")
}

func TestIsValidationError_OtherError(t *testing.T) {
	_, ok := IsValidationError(errors.New("boom"))
	assert.False(t, ok)
}

func TestSplitAuthorName(t *testing.T) {
	surname, given := SplitAuthorName("Frank Herbert")
	assert.Equal(t, "Herbert", surname)
	assert.Equal(t, "Frank", given)

	surname, given = SplitAuthorName("Gabriel García Márquez")
	assert.Equal(t, "Márquez", surname)
	assert.Equal(t, "Gabriel García", given)

	surname, given = SplitAuthorName("Homer")
	assert.Equal(t, "Homer", surname)
	assert.Empty(t, given)

	surname, given = SplitAuthorName("   ")
	assert.Empty(t, surname)
	assert.Empty(t, given)
}

func TestParsePublisher(t *testing.T) {
	name, city := ParsePublisher("Chilton Books, Philadelphia")
	assert.Equal(t, "Chilton Books", name)
	assert.Equal(t, "Philadelphia", city)

	name, city = ParsePublisher("Penguin")
	assert.Equal(t, "Penguin", name)
	assert.Empty(t, city)

	// Only the first comma separates.
	name, city = ParsePublisher("Harcourt, Brace, and Company")
	assert.Equal(t, "Harcourt", name)
	assert.Equal(t, "Brace, and Company", city)

	name, city = ParsePublisher("")
	assert.Empty(t, name)
	assert.Empty(t, city)
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Fiction", "Sci-Fi"}, SplitGenres("Fiction, Sci-Fi"))
	assert.Equal(t, []string{"Fiction"}, SplitGenres(" Fiction , , "))
	assert.Nil(t, SplitGenres(""))
}
