package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingValidate(t *testing.T) {
	valid := Booking{
		FullName: "Bob",
		Email:    "bob@x.com",
		Date:     "2024-09-15",
		Time:     "14:30",
	}

	t.Run("all fields present", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing single field", func(t *testing.T) {
		b := valid
		b.Email = ""
		err := b.Validate()
		require.Error(t, err)

		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"email"}, missing.Fields)
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		b := valid
		b.FullName = "   "
		err := b.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "full_name")
	})

	t.Run("all fields missing", func(t *testing.T) {
		err := Booking{}.Validate()
		require.Error(t, err)

		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Len(t, missing.Fields, 4)
	})
}
