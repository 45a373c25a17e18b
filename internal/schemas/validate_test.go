package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBody_JobCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "full bundle",
			body: `{"client_name":"Acme","title":"Backend Engineer","profile":"5 years","functions":["design APIs"],"skills":["go"]}`,
		},
		{
			name: "minimal",
			body: `{"client_name":"Acme","title":"Backend Engineer"}`,
		},
		{
			name:    "missing title",
			body:    `{"client_name":"Acme"}`,
			wantErr: true,
		},
		{
			name:    "empty client name",
			body:    `{"client_name":"","title":"x"}`,
			wantErr: true,
		},
		{
			name:    "functions must be an array",
			body:    `{"client_name":"Acme","title":"x","functions":"design, review"}`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			body:    `{"client_name":"Acme","title":"x","salary":100}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `client_name=Acme`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBody(JobCreate, []byte(tt.body))
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.NotEmpty(t, verr.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBody_Contact(t *testing.T) {
	valid := `{"name":"Dana","email":"dana@example.com","message":"I would like a demo."}`
	assert.NoError(t, ValidateBody(Contact, []byte(valid)))

	err := ValidateBody(Contact, []byte(`{"name":"Dana","email":"dana@example.com"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// too-short message
	err = ValidateBody(Contact, []byte(`{"name":"Dana","email":"dana@example.com","message":"hi"}`))
	require.ErrorAs(t, err, &verr)
}

func TestValidateBody_ProfileCreate(t *testing.T) {
	valid := `{"first_name":"Dana","last_name":"Lopez","birthday":"1994-05-12","country":"Argentina","level_id":3}`
	assert.NoError(t, ValidateBody(ProfileCreate, []byte(valid)))

	// level_id is mandatory; the candidate row references the levels table
	err := ValidateBody(ProfileCreate, []byte(`{"first_name":"Dana","last_name":"Lopez"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "level_id")
}

func TestValidateBody_ProfileUpdate(t *testing.T) {
	assert.NoError(t, ValidateBody(ProfileUpdate, []byte(`{"country":"Argentina"}`)))

	// an empty patch changes nothing and is rejected
	err := ValidateBody(ProfileUpdate, []byte(`{}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateBody_UnknownSchema(t *testing.T) {
	err := ValidateBody("no_such_schema", []byte(`{}`))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}
