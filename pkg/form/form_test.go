package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/form"
)

func validSubmission() form.Submission {
	return form.Submission{
		Name:    "Jo",
		Email:   "jo@x.com",
		Subject: "Hi there",
		Message: "1234567890",
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	res := form.Validate(validSubmission())

	require.True(t, res.Valid())
	require.NotNil(t, res.Sanitized)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "Jo", res.Sanitized.Name)
	assert.Equal(t, "jo@x.com", res.Sanitized.Email)
	assert.Equal(t, "Hi there", res.Sanitized.Subject)
	assert.Equal(t, "1234567890", res.Sanitized.Message)
}

func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(*form.Submission)
		wantErrSub string
	}{
		{
			name:       "name too short",
			mutate:     func(s *form.Submission) { s.Name = "J" },
			wantErrSub: "name",
		},
		{
			name:       "name only whitespace",
			mutate:     func(s *form.Submission) { s.Name = "   " },
			wantErrSub: "name",
		},
		{
			name:       "email missing",
			mutate:     func(s *form.Submission) { s.Email = "" },
			wantErrSub: "email",
		},
		{
			name:       "email without domain dot",
			mutate:     func(s *form.Submission) { s.Email = "jo@localhost" },
			wantErrSub: "email",
		},
		{
			name:       "email with spaces",
			mutate:     func(s *form.Submission) { s.Email = "jo smith@x.com" },
			wantErrSub: "email",
		},
		{
			name:       "subject too short",
			mutate:     func(s *form.Submission) { s.Subject = "Hi" },
			wantErrSub: "subject",
		},
		{
			name:       "message too short",
			mutate:     func(s *form.Submission) { s.Message = "short" },
			wantErrSub: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub := validSubmission()
			tt.mutate(&sub)

			res := form.Validate(sub)

			require.False(t, res.Valid())
			require.Nil(t, res.Sanitized)
			require.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors[0], tt.wantErrSub)
		})
	}
}

func TestValidate_ErrorsAccumulate(t *testing.T) {
	t.Parallel()

	res := form.Validate(form.Submission{
		Name:    "J",
		Email:   "bad",
		Subject: "Hi",
		Message: "short",
	})

	require.False(t, res.Valid())
	assert.Nil(t, res.Sanitized)
	assert.Len(t, res.Errors, 4)
}

func TestValidate_EmptySubmission(t *testing.T) {
	t.Parallel()

	res := form.Validate(form.Submission{})

	require.False(t, res.Valid())
	assert.Len(t, res.Errors, 4)
}

func TestValidate_Sanitization(t *testing.T) {
	t.Parallel()

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()

		sub := validSubmission()
		sub.Name = "  Jo  "
		sub.Subject = "\tHi there\n"

		res := form.Validate(sub)

		require.True(t, res.Valid())
		assert.Equal(t, "Jo", res.Sanitized.Name)
		assert.Equal(t, "Hi there", res.Sanitized.Subject)
	})

	t.Run("lowercases email", func(t *testing.T) {
		t.Parallel()

		sub := validSubmission()
		sub.Email = "Jo.Smith@Example.COM"

		res := form.Validate(sub)

		require.True(t, res.Valid())
		assert.Equal(t, "jo.smith@example.com", res.Sanitized.Email)
	})

	t.Run("truncates oversized fields instead of rejecting", func(t *testing.T) {
		t.Parallel()

		sub := validSubmission()
		sub.Name = strings.Repeat("a", form.MaxNameLen+50)
		sub.Subject = strings.Repeat("s", form.MaxSubjectLen+1)
		sub.Message = strings.Repeat("m", form.MaxMessageLen*2)

		res := form.Validate(sub)

		require.True(t, res.Valid())
		assert.Len(t, res.Sanitized.Name, form.MaxNameLen)
		assert.Len(t, res.Sanitized.Subject, form.MaxSubjectLen)
		assert.Len(t, res.Sanitized.Message, form.MaxMessageLen)
	})

	t.Run("truncation preserves rune boundaries", func(t *testing.T) {
		t.Parallel()

		sub := validSubmission()
		sub.Message = strings.Repeat("é", form.MaxMessageLen) // 2 bytes per rune

		res := form.Validate(sub)

		require.True(t, res.Valid())
		assert.True(t, strings.HasSuffix(res.Sanitized.Message, "é"))
		assert.LessOrEqual(t, len(res.Sanitized.Message), form.MaxMessageLen)
	})
}
