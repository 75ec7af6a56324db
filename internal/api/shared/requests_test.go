package shared

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	Digits int `validate:"min=1,max=9"`
}

type selfValidating struct{ called bool }

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(testQuery{Digits: 3}))
	assert.Error(t, ValidateRequest(testQuery{Digits: 0}))

	sv := &selfValidating{}
	require.NoError(t, ValidateRequest(sv))
	assert.True(t, sv.called, "Validate method should be preferred over struct tags")
}

func TestQueryHelpers(t *testing.T) {
	q, err := url.ParseQuery("digits=4&seed=42&limit=false&ops=plus,,minus&ops=x&bad=abc")
	require.NoError(t, err)

	digits, err := QueryInt(q, "digits", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, digits)

	missing, err := QueryInt(q, "missing", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, missing)

	_, err = QueryInt(q, "bad", 3)
	assert.ErrorContains(t, err, `"bad" must be an integer`)

	seed, err := QueryUint64(q, "seed", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), seed)

	_, err = QueryUint64(url.Values{"seed": {"-1"}}, "seed", 0)
	assert.Error(t, err)

	limit, err := QueryBool(q, "limit", true)
	require.NoError(t, err)
	assert.False(t, limit)

	_, err = QueryBool(q, "bad", true)
	assert.Error(t, err)

	assert.Equal(t, []string{"plus", "minus", "x"}, QueryList(q, "ops", nil))
	assert.Equal(t, []string{"+"}, QueryList(q, "none", []string{"+"}))
	assert.Empty(t, QueryList(url.Values{"ops": {" , "}}, "ops", []string{"+"}))
}

func TestValidateRequestNamesQueryParameters(t *testing.T) {
	query := struct {
		Digits     int      `query:"digits" validate:"min=1,max=9"`
		Operations []string `query:"ops,omitempty" validate:"min=1"`
		Name       string   `json:"name" validate:"required"`
	}{Digits: 12}

	err := ValidateRequest(query)
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}
	assert.Equal(t, []string{"digits", "ops", "name"}, fields)
}

func TestFieldName(t *testing.T) {
	typ := reflect.TypeOf(struct {
		A int `query:"a_param"`
		B int `json:"b_field,omitempty"`
		C int
		D int `json:"-"`
	}{})

	assert.Equal(t, "a_param", FieldName(typ.Field(0)))
	assert.Equal(t, "b_field", FieldName(typ.Field(1)))
	assert.Equal(t, "C", FieldName(typ.Field(2)))
	assert.Equal(t, "", FieldName(typ.Field(3)))
}
