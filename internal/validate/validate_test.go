package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginSchema struct {
	Email    string `json:"email" validate:"required,email" message:"Invalid email;required=Email is required"`
	Password string `json:"password" validate:"required" message:"Password is required"`
}

type entrySchema struct {
	Name        string  `json:"name" validate:"required" message:"Name is required"`
	Description string  `json:"description" default:"n/a"`
	Amount      float64 `json:"amount" default:"0"`
	CategoryID  int64   `json:"categoryId" validate:"required,min=1"`
	TransDate   *int64  `json:"transDate" validate:"required,min=0" message:"required=Trans Date is required;min=Trans Date is required;int=Cannot be a decimal"`
}

type addressSchema struct {
	City string `json:"city" validate:"required"`
	Zip  string `json:"zip" validate:"required,min=5"`
}

type personSchema struct {
	Name    string         `json:"name" validate:"required"`
	Address addressSchema  `json:"address"`
	Backup  *addressSchema `json:"backup" validate:"omitnil"`
}

type patchSchema struct {
	Name *string `json:"name" validate:"omitnil,min=1" message:"Name is required"`
	Age  *int    `json:"age" validate:"omitnil,gte=0"`
}

type nullableSchema struct {
	Note *string `json:"note" nullable:""`
	Tag  *string `json:"tag"`
}

type signupSchema struct {
	Username string `json:"username" validate:"required,notblank" message:"Username is required"`
	Nick     string `json:"nick" validate:"notblank"`
}

func TestValidateSuccess(t *testing.T) {
	v := New()

	res := Validate[loginSchema](v, map[string]any{"email": "u1@x.com", "password": "p", "extra": true})

	require.True(t, res.Success)
	require.NotNil(t, res.Data)
	assert.Nil(t, res.Errors)
	assert.Equal(t, "u1@x.com", res.Data.Email)
	assert.Equal(t, "p", res.Data.Password)
}

func TestValidateCollectsEveryField(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input map[string]any
		want  FieldErrors
	}{
		{
			name:  "empty body",
			input: map[string]any{},
			want: FieldErrors{
				"email":    {"Email is required"},
				"password": {"Password is required"},
			},
		},
		{
			name:  "not an email and empty password",
			input: map[string]any{"email": "nope", "password": ""},
			want: FieldErrors{
				"email":    {"Invalid email"},
				"password": {"Password is required"},
			},
		},
		{
			name:  "wrong types",
			input: map[string]any{"email": 12.0, "password": false},
			want: FieldErrors{
				"email":    {"Invalid email"},
				"password": {"Password is required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate[loginSchema](v, tt.input)
			assert.False(t, res.Success)
			assert.Nil(t, res.Data)
			assert.Equal(t, tt.want, res.Errors)
		})
	}
}

func TestValidateTypeMismatchDefaultMessage(t *testing.T) {
	v := New()

	res := Validate[personSchema](v, map[string]any{"name": 5.0, "address": "street"})

	require.False(t, res.Success)
	assert.Equal(t, []string{"Expected string, received number"}, res.Errors["name"])
	assert.Equal(t, []string{"Expected object, received string"}, res.Errors["address"])
}

func TestValidateDefaultsAndPointers(t *testing.T) {
	v := New()

	res := ValidateJSON[entrySchema](v, []byte(`{"name":"Coffee","categoryId":3,"transDate":0}`))

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, "n/a", res.Data.Description)
	assert.Equal(t, 0.0, res.Data.Amount)
	require.NotNil(t, res.Data.TransDate)
	assert.Equal(t, int64(0), *res.Data.TransDate)
}

func TestValidateEntryFailures(t *testing.T) {
	v := New()

	res := ValidateJSON[entrySchema](v, []byte(`{"description":"Missing amount and date","transDate":1.5,"categoryId":0}`))

	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{
		"name":       {"Name is required"},
		"categoryId": {"Required"},
		"transDate":  {"Cannot be a decimal"},
	}, res.Errors)

	res = ValidateJSON[entrySchema](v, []byte(`{"name":"x","categoryId":1,"transDate":-1}`))
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{"transDate": {"Trans Date is required"}}, res.Errors)

	res = ValidateJSON[entrySchema](v, []byte(`{"name":"x","categoryId":1.5,"transDate":1}`))
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{"categoryId": {"Expected integer, received float"}}, res.Errors)
}

func TestValidateNestedPaths(t *testing.T) {
	v := New()

	res := Validate[personSchema](v, map[string]any{
		"name":    "a",
		"address": map[string]any{"zip": "12"},
		"backup":  map[string]any{"city": 1.0, "zip": "12345"},
	})

	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{
		"address.city": {"Required"},
		"address.zip":  {"String must contain at least 5 character(s)"},
		"backup.city":  {"Expected string, received number"},
	}, res.Errors)
}

func TestValidatePartial(t *testing.T) {
	v := New()

	res := Validate[patchSchema](v, map[string]any{})
	require.True(t, res.Success)
	assert.Nil(t, res.Data.Name)
	assert.Nil(t, res.Data.Age)

	res = Validate[patchSchema](v, map[string]any{"name": "", "age": -1.0})
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{
		"name": {"Name is required"},
		"age":  {"Number must be greater than or equal to 0"},
	}, res.Errors)

	res = Validate[patchSchema](v, map[string]any{"name": nil, "age": nil})
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{
		"name": {"Name is required"},
		"age":  {"Expected integer, received null"},
	}, res.Errors)
}

func TestValidateNullable(t *testing.T) {
	v := New()

	res := Validate[nullableSchema](v, map[string]any{"note": nil})
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Nil(t, res.Data.Note)

	res = Validate[nullableSchema](v, map[string]any{"note": "x", "tag": nil})
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{"tag": {"Expected string, received null"}}, res.Errors)
}

func TestValidateNotBlank(t *testing.T) {
	v := New()

	res := Validate[signupSchema](v, map[string]any{"username": "   ", "nick": "\t"})
	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{
		"username": {"Username is required"},
		"nick":     {"Required"},
	}, res.Errors)

	res = Validate[signupSchema](v, map[string]any{"username": " u1 ", "nick": "n"})
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, " u1 ", res.Data.Username)
}

func TestValidateIntegerFields(t *testing.T) {
	v := New()

	res := ValidateJSON[entrySchema](v, []byte(`{"name":"x","categoryId":2.0,"transDate":1e3}`))
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, int64(2), res.Data.CategoryID)
	assert.Equal(t, int64(1000), *res.Data.TransDate)

	tests := []struct {
		body string
		want []string
	}{
		{body: `{"name":"x","categoryId":1,"transDate":"abc"}`, want: []string{"Expected integer, received string"}},
		{body: `{"name":"x","categoryId":1,"transDate":2.25}`, want: []string{"Cannot be a decimal"}},
		{body: `{"name":"x","categoryId":1,"transDate":null}`, want: []string{"Expected integer, received null"}},
	}
	for _, tt := range tests {
		res := ValidateJSON[entrySchema](v, []byte(tt.body))
		require.False(t, res.Success, tt.body)
		assert.Equal(t, FieldErrors{"transDate": tt.want}, res.Errors, tt.body)
	}
}

func TestValidateDisallowUnknown(t *testing.T) {
	v := New()

	res := Validate[patchSchema](v, map[string]any{"name": "a", "color": "red"}, DisallowUnknown())

	require.False(t, res.Success)
	assert.Equal(t, FieldErrors{"color": {"Unrecognized key"}}, res.Errors)
}

func TestValidateNonObjectInput(t *testing.T) {
	v := New()

	for input, want := range map[string]string{
		`[]`:   "Expected object, received array",
		`null`: "Expected object, received null",
		`"x"`:  "Expected object, received string",
	} {
		res := ValidateJSON[loginSchema](v, []byte(input))
		require.False(t, res.Success, input)
		assert.Equal(t, FieldErrors{RootPath: {want}}, res.Errors, input)
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	v := New()

	for _, body := range []string{``, `{`, `{"email":}`, `{} {}`} {
		res := ValidateJSON[loginSchema](v, []byte(body))
		require.False(t, res.Success, body)
		assert.Equal(t, FieldErrors{RootPath: {"Malformed JSON in request body"}}, res.Errors, body)
	}
}

func TestParseMessages(t *testing.T) {
	r := parseMessages("Trans Date is required;type=Cannot be a decimal")
	assert.Equal(t, "Cannot be a decimal", r.text("type", "d"))
	assert.Equal(t, "Trans Date is required", r.text("min", "d"))

	r = parseMessages("a=b is fine")
	assert.Equal(t, "b is fine", r.text("a", "d"))

	r = parseMessages("")
	assert.Equal(t, "d", r.text("required", "d"))
}
