package comment_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugocs/hugocs/comment"
)

func validForm() url.Values {
	return url.Values{
		"name":         {"Juha"},
		"email":        {"juha@example.com"},
		"website":      {"https://example.com"},
		"avatar_type":  {"identicon"},
		"page_id":      {"post/hello-world"},
		"content_type": {"md"},
		"body":         {"Nice post!"},
	}
}

func postExists(string, string) bool { return true }

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, comment.Validate(validForm(), postExists))
}

func TestValidate_EmptyWebsite(t *testing.T) {
	form := validForm()
	form.Set("website", "")

	assert.NoError(t, comment.Validate(form, postExists))
}

func TestValidate_Websites(t *testing.T) {
	valid := []string{
		"example.com",
		"https://example.com",
		"http://example.com:8080/blog/",
		"http://example.com?x=1",
		"https://example.com#about",
		"https://juha@example.com/",
	}

	for _, website := range valid {
		t.Run(website, func(t *testing.T) {
			form := validForm()
			form.Set("website", website)

			assert.NoError(t, comment.Validate(form, postExists))
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		message string
	}{
		{"honeypot", "last_name", "Bot", "You appear to be a spammer, or your browser auto-fills this form."},
		{"empty name", "name", "", "Name is not valid"},
		{"punctuation name", "name", "!!!", "Name is not valid"},
		{"long name", "name", strings.Repeat("a", 129), "Name is not valid"},
		{"email without at", "email", "juha.example.com", "Email address is not valid"},
		{"uppercase email", "email", "Juha@Example.com", "Email address is not valid"},
		{"long email", "email", strings.Repeat("a", 120) + "@example.com", "Email address is not valid"},
		{"website with spaces", "website", "not a url", "Website is not valid"},
		{"long website", "website", strings.Repeat("a", 129), "Website is not valid"},
		{"empty avatar type", "avatar_type", "", "Avatar type is not valid"},
		{"long avatar type", "avatar_type", strings.Repeat("a", 33), "Avatar type is not valid"},
		{"page id traversal", "page_id", "../../etc/passwd", "page_id is not valid"},
		{"page id trailing slash", "page_id", "post/", "page_id is not valid"},
		{"long content type", "content_type", "markdown", "Content type is not valid"},
		{"content type with dot", "content_type", ".md", "Content type is not valid"},
		{"empty body", "body", "", "You forgot to write the actual comment!"},
		{"long body", "body", strings.Repeat("a", 8193), "You forgot to write the actual comment!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Set(tt.field, tt.value)

			err := comment.Validate(form, postExists)

			var validationErr *comment.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.message, validationErr.Error())
			assert.ErrorIs(t, err, comment.ErrInvalidComment)
		})
	}
}

func TestValidate_PostMissing(t *testing.T) {
	var gotPageID, gotContentType string

	err := comment.Validate(validForm(), func(pageID, contentType string) bool {
		gotPageID, gotContentType = pageID, contentType
		return false
	})

	var validationErr *comment.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "page_id", validationErr.Field)
	assert.Equal(t, "Specified post does not exist", validationErr.Message)
	assert.Equal(t, "post/hello-world", gotPageID)
	assert.Equal(t, "md", gotContentType)
}
