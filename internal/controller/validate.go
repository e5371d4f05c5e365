package controller

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// ClientForm is the raw input of the client edit form. Text fields hold what
// the user typed; Validate trims them, checks every rule, and converts the
// form into a *types.Client.
type ClientForm struct {
	Name            string `json:"name" valid:"required"`
	Phone           string `json:"phone" valid:"required"`
	Address         string `json:"address" valid:"required"`
	PostalCode      string `json:"postal_code" valid:"required,postalcode"`
	City            string `json:"city" valid:"required"`
	BirthDate       string `json:"birth_date" valid:"required,isodate"`
	AvailableCredit string `json:"available_credit" valid:"required,credit"`
	IsGoodClient    bool   `json:"is_good_client" valid:"-"`
	HairColor       string `json:"hair_color" valid:"required,haircolor"`
}

// Validators registered in govalidator.TagMap.
const (
	tagPostalCode = "postalcode"
	tagISODate    = "isodate"
	tagCredit     = "credit"
	tagHairColor  = "haircolor"
	tagRequired   = "required"
)

// ruleMessages maps a failed validator to the message shown for the field.
var ruleMessages = map[string]string{
	tagRequired:   "is required",
	tagPostalCode: "must be exactly 5 digits",
	tagISODate:    "must be a valid date in YYYY-MM-DD format",
	tagCredit:     "must be a non-negative number",
	tagHairColor:  "must be one of brown, blond, red, bald",
}

func init() {
	govalidator.TagMap[tagPostalCode] = govalidator.Validator(isPostalCode)
	govalidator.TagMap[tagISODate] = govalidator.Validator(isISODate)
	govalidator.TagMap[tagCredit] = govalidator.Validator(isCredit)
	govalidator.TagMap[tagHairColor] = govalidator.Validator(isHairColor)
}

// fieldOrder and fieldNames are derived from the ClientForm tags: the json
// name of every field, in declaration order, keyed by both Go and json name.
var fieldOrder, fieldNames = formFields()

func formFields() (map[string]int, map[string]string) {
	order := make(map[string]int)
	names := make(map[string]string)
	rt := reflect.TypeOf(ClientForm{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		order[name] = i
		names[f.Name] = name
		names[name] = name
	}
	return order, names
}

func isPostalCode(s string) bool {
	return len(s) == 5 && govalidator.IsNumeric(s)
}

func isISODate(s string) bool {
	return govalidator.IsTime(s, types.BirthDateLayout)
}

func isCredit(s string) bool {
	_, ok := parseCredit(s)
	return ok
}

func isHairColor(s string) bool {
	_, err := types.ParseHairColor(s)
	return err == nil
}

// parseCredit accepts a finite, non-negative decimal number. A comma is
// accepted as the decimal separator.
func parseCredit(s string) (float64, bool) {
	s = strings.Replace(s, ",", ".", 1)
	if !govalidator.IsFloat(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// trimmed returns a copy of f with surrounding whitespace removed from every
// text field.
func (f ClientForm) trimmed() ClientForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.City = strings.TrimSpace(f.City)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.AvailableCredit = strings.TrimSpace(f.AvailableCredit)
	f.HairColor = strings.TrimSpace(f.HairColor)
	return f
}

// Validate checks every rule of the form and returns the client it
// describes, with ID left at zero. All violations are reported together in a
// *types.ValidationError ordered like the form fields.
func Validate(form ClientForm) (*types.Client, error) {
	form = form.trimmed()

	ve := &types.ValidationError{}
	if _, err := govalidator.ValidateStruct(&form); err != nil {
		collect(err, ve)
	}
	if err := ve.Err(); err != nil {
		sort.SliceStable(ve.Fields, func(i, j int) bool {
			return fieldOrder[ve.Fields[i].Field] < fieldOrder[ve.Fields[j].Field]
		})
		return nil, err
	}

	credit, _ := parseCredit(form.AvailableCredit)
	hair, _ := types.ParseHairColor(form.HairColor)
	return &types.Client{
		Name:            form.Name,
		Phone:           form.Phone,
		Address:         form.Address,
		PostalCode:      form.PostalCode,
		City:            form.City,
		BirthDate:       form.BirthDate,
		AvailableCredit: credit,
		IsGoodClient:    form.IsGoodClient,
		HairColor:       hair,
	}, nil
}

// ValidateClient checks an already typed client, as read from an import
// file, against the same rules as the form and returns its normalised copy
// with the id kept. The id must be positive.
func ValidateClient(c *types.Client) (*types.Client, error) {
	if c == nil {
		return nil, types.ErrInvalidData
	}
	normalized, err := Validate(FormFromClient(c))
	if c.ID > 0 {
		if err != nil {
			return nil, err
		}
		normalized.ID = c.ID
		return normalized, nil
	}

	ve := &types.ValidationError{}
	ve.Add("id", "must be a positive integer")
	var prev *types.ValidationError
	if errors.As(err, &prev) {
		ve.Fields = append(ve.Fields, prev.Fields...)
	}
	return nil, ve
}

// FormFromClient renders c as form input, for pre-filling an edit form.
func FormFromClient(c *types.Client) ClientForm {
	return ClientForm{
		Name:            c.Name,
		Phone:           c.Phone,
		Address:         c.Address,
		PostalCode:      c.PostalCode,
		City:            c.City,
		BirthDate:       c.BirthDate,
		AvailableCredit: strconv.FormatFloat(c.AvailableCredit, 'f', -1, 64),
		IsGoodClient:    c.IsGoodClient,
		HairColor:       string(c.HairColor),
	}
}

// collect flattens govalidator errors into ve.
func collect(err error, ve *types.ValidationError) {
	switch e := err.(type) {
	case govalidator.Errors:
		for _, inner := range e {
			collect(inner, ve)
		}
	case govalidator.Error:
		field, ok := fieldNames[e.Name]
		if !ok {
			field = e.Name
		}
		msg, ok := ruleMessages[e.Validator]
		if !ok {
			msg = e.Err.Error()
		}
		ve.Add(field, msg)
	default:
		ve.Add("form", err.Error())
	}
}
