package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// validForm returns a form that passes every rule.
func validForm() ClientForm {
	return ClientForm{
		Name:            "Alice Martin",
		Phone:           "06 12 34 56 78",
		Address:         "12 rue des Lilas",
		PostalCode:      "69003",
		City:            "Lyon",
		BirthDate:       "1988-04-17",
		AvailableCredit: "250.75",
		IsGoodClient:    true,
		HairColor:       "brown",
	}
}

// fieldsOf returns the field names of a validation error, in order.
func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *types.ValidationError
	require.True(t, errors.As(err, &ve), "expected *types.ValidationError, got %v", err)
	names := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		names[i] = f.Field
	}
	return names
}

func TestValidate_Valid(t *testing.T) {
	client, err := Validate(validForm())
	require.NoError(t, err)
	assert.Equal(t, &types.Client{
		Name:            "Alice Martin",
		Phone:           "06 12 34 56 78",
		Address:         "12 rue des Lilas",
		PostalCode:      "69003",
		City:            "Lyon",
		BirthDate:       "1988-04-17",
		AvailableCredit: 250.75,
		IsGoodClient:    true,
		HairColor:       types.HairBrown,
	}, client)
}

func TestValidate_Normalises(t *testing.T) {
	form := validForm()
	form.Name = "  Alice Martin  "
	form.PostalCode = " 01000 "
	form.AvailableCredit = "12,50"
	form.HairColor = "BLOND"

	client, err := Validate(form)
	require.NoError(t, err)
	assert.Equal(t, "Alice Martin", client.Name)
	assert.Equal(t, "01000", client.PostalCode, "leading zero must be kept")
	assert.Equal(t, 12.5, client.AvailableCredit)
	assert.Equal(t, types.HairBlond, client.HairColor)
}

func TestValidate_SingleRule(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *ClientForm)
		wantField string
		wantMsg   string
	}{
		{name: "empty name", mutate: func(f *ClientForm) { f.Name = "" }, wantField: "name", wantMsg: "is required"},
		{name: "blank name", mutate: func(f *ClientForm) { f.Name = "   " }, wantField: "name", wantMsg: "is required"},
		{name: "empty phone", mutate: func(f *ClientForm) { f.Phone = "" }, wantField: "phone", wantMsg: "is required"},
		{name: "empty address", mutate: func(f *ClientForm) { f.Address = "\t" }, wantField: "address", wantMsg: "is required"},
		{name: "empty city", mutate: func(f *ClientForm) { f.City = "" }, wantField: "city", wantMsg: "is required"},
		{name: "four digit postal code", mutate: func(f *ClientForm) { f.PostalCode = "1234" }, wantField: "postal_code", wantMsg: "must be exactly 5 digits"},
		{name: "six digit postal code", mutate: func(f *ClientForm) { f.PostalCode = "123456" }, wantField: "postal_code", wantMsg: "must be exactly 5 digits"},
		{name: "non numeric postal code", mutate: func(f *ClientForm) { f.PostalCode = "12a45" }, wantField: "postal_code", wantMsg: "must be exactly 5 digits"},
		{name: "impossible day", mutate: func(f *ClientForm) { f.BirthDate = "2023-02-30" }, wantField: "birth_date", wantMsg: "must be a valid date in YYYY-MM-DD format"},
		{name: "month 13", mutate: func(f *ClientForm) { f.BirthDate = "2023-13-01" }, wantField: "birth_date"},
		{name: "non ISO date", mutate: func(f *ClientForm) { f.BirthDate = "17/04/1988" }, wantField: "birth_date"},
		{name: "negative credit", mutate: func(f *ClientForm) { f.AvailableCredit = "-0.01" }, wantField: "available_credit", wantMsg: "must be a non-negative number"},
		{name: "non numeric credit", mutate: func(f *ClientForm) { f.AvailableCredit = "lots" }, wantField: "available_credit"},
		{name: "NaN credit", mutate: func(f *ClientForm) { f.AvailableCredit = "NaN" }, wantField: "available_credit"},
		{name: "infinite credit", mutate: func(f *ClientForm) { f.AvailableCredit = "Inf" }, wantField: "available_credit"},
		{name: "green hair", mutate: func(f *ClientForm) { f.HairColor = "green" }, wantField: "hair_color", wantMsg: "must be one of brown, blond, red, bald"},
		{name: "empty hair", mutate: func(f *ClientForm) { f.HairColor = "" }, wantField: "hair_color", wantMsg: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			client, err := Validate(form)
			assert.Nil(t, client)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, []string{tt.wantField}, fieldsOf(t, err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantField+": "+tt.wantMsg)
			}
		})
	}
}

func TestValidate_LeapDay(t *testing.T) {
	form := validForm()
	form.BirthDate = "2000-02-29"
	_, err := Validate(form)
	assert.NoError(t, err)

	form.BirthDate = "1900-02-29"
	_, err = Validate(form)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestValidate_ZeroCredit(t *testing.T) {
	form := validForm()
	form.AvailableCredit = "0"
	client, err := Validate(form)
	require.NoError(t, err)
	assert.Zero(t, client.AvailableCredit)
}

func TestValidate_AggregatesEveryViolation(t *testing.T) {
	form := ClientForm{
		Name:            "",
		Phone:           "0600000000",
		Address:         "",
		PostalCode:      "12a45",
		City:            "Lyon",
		BirthDate:       "2023-02-30",
		AvailableCredit: "-5",
		HairColor:       "green",
	}

	_, err := Validate(form)
	require.Error(t, err)
	assert.Equal(t,
		[]string{"name", "address", "postal_code", "birth_date", "available_credit", "hair_color"},
		fieldsOf(t, err),
		"every violated field is reported in form order")
}

func TestValidateClient(t *testing.T) {
	t.Run("valid client keeps id and normalises", func(t *testing.T) {
		c := &types.Client{
			ID: 12, Name: " Bob ", Phone: "07", Address: "1 place Bellecour",
			PostalCode: "69002", City: "Lyon", BirthDate: "1970-01-01",
			AvailableCredit: 3, HairColor: "RED",
		}
		got, err := ValidateClient(c)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.ID)
		assert.Equal(t, "Bob", got.Name)
		assert.Equal(t, types.HairRed, got.HairColor)
	})

	t.Run("missing id and bad fields are aggregated", func(t *testing.T) {
		c := &types.Client{Name: "Bob", AvailableCredit: -1}
		_, err := ValidateClient(c)
		require.Error(t, err)
		fields := fieldsOf(t, err)
		assert.Equal(t, "id", fields[0])
		assert.Contains(t, fields, "available_credit")
		assert.Contains(t, fields, "hair_color")
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := ValidateClient(nil)
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})
}

func TestFormFromClientRoundTrip(t *testing.T) {
	client, err := Validate(validForm())
	require.NoError(t, err)

	again, err := Validate(FormFromClient(client))
	require.NoError(t, err)
	assert.Equal(t, client, again)
}
