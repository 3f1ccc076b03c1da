package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Date  string   `validate:"datetime=2006-01-02"`
	Slots []string `validate:"dive,datetime=15:04"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		errs := ValidateStruct(payload{Date: "2025-06-06", Slots: []string{"10:00", "14:30"}})
		assert.Nil(t, errs)
	})

	t.Run("bad date", func(t *testing.T) {
		errs := ValidateStruct(payload{Date: "06/06/2025"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "Date", errs[0].Field)
		assert.Equal(t, "datetime", errs[0].Tag)
	})

	t.Run("bad slot among good ones", func(t *testing.T) {
		errs := ValidateStruct(payload{Date: "2025-06-06", Slots: []string{"10:00", "25:99"}})
		assert.Len(t, errs, 1)
		assert.Equal(t, "datetime", errs[0].Tag)
	})
}
