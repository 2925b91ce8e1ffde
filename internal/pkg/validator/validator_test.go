package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type line struct {
	Qty int `json:"qta" validate:"min=1"`
}

type request struct {
	Title string `json:"titolo" validate:"required"`
	Loc   int    `json:"location_index" validate:"min=1,max=8"`
	Lines []line `json:"righe" validate:"dive"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(request{Title: "ok", Loc: 1}))

	errs := Validate(request{Loc: 9, Lines: []line{{Qty: 1}, {Qty: 0}}})
	assert.Equal(t, map[string]string{
		"titolo":         "required",
		"location_index": "max",
		"righe[1].qta":   "min",
	}, errs)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(request{Title: "ok", Loc: 2}))

	err := Check(request{Loc: 2})
	var fe FieldErrors
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "required", fe["titolo"])
	assert.Equal(t, "invalid fields: titolo: required", err.Error())
}
