package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type isbnField struct {
	ISBN string `validate:"required,isbn"`
}

func TestValidateISBN(t *testing.T) {
	valid := []string{
		"9780385537858",
		"0385537859",
		"978-0-385-53785-8",
		"978 0385537858",
	}
	for _, isbn := range valid {
		t.Run(isbn, func(t *testing.T) {
			assert.Nil(t, ValidateStruct(isbnField{ISBN: isbn}))
		})
	}

	invalid := []string{
		"",
		"12345",
		"not-an-isbn",
		"97811019741171",
		"978038553785X",
	}
	for _, isbn := range invalid {
		t.Run("invalid "+isbn, func(t *testing.T) {
			details := ValidateStruct(isbnField{ISBN: isbn})
			assert.NotEmpty(t, details)
			assert.Equal(t, "iSBN", details[0].Field)
		})
	}
}

type accountFields struct {
	Username  string `validate:"required,min=5,max=20,username_chars"`
	FirstName string `validate:"required,min=3,max=20,name_chars"`
}

func TestValidateAccountFields(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateStruct(accountFields{Username: "reader_01", FirstName: "Dan"}))
	})

	t.Run("username with spaces", func(t *testing.T) {
		details := ValidateStruct(accountFields{Username: "reader 01", FirstName: "Dan"})
		assert.Len(t, details, 1)
		assert.Equal(t, "username", details[0].Field)
	})

	t.Run("name with digits", func(t *testing.T) {
		details := ValidateStruct(accountFields{Username: "reader_01", FirstName: "D4n"})
		assert.Len(t, details, 1)
		assert.Equal(t, "firstName", details[0].Field)
	})

	t.Run("collects every failing field", func(t *testing.T) {
		details := ValidateStruct(accountFields{Username: "ab", FirstName: ""})
		assert.Len(t, details, 2)
	})
}
