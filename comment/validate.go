package comment

import (
	"errors"
	"net/url"
	"regexp"
)

var ErrInvalidComment = errors.New("invalid comment")

// ValidationError reports the first form field that failed validation.
// Message is meant to be shown to the commenter as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidComment
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PostExistsFunc reports whether the post identified by page id and
// content file extension exists.
type PostExistsFunc func(pageID string, contentType string) bool

var (
	namePattern        = regexp.MustCompile(`[\pL\pN_\-]`)
	emailPattern       = regexp.MustCompile(`^[a-z0-9_.\-+]+@[a-z0-9_.\-+]+$`)
	websitePattern     = regexp.MustCompile(`(?i)^(https?://)?([^\s/?#@]+@)?[a-z0-9\-.]+(:[0-9]+)?([/?#]\S*)?$`)
	avatarTypePattern  = regexp.MustCompile(`^[a-z]+$`)
	pageIDPattern      = regexp.MustCompile(`^[a-z0-9\-]+(/[a-z0-9\-]+)*$`)
	contentTypePattern = regexp.MustCompile(`^[a-z]+$`)
)

// Validate checks the submitted form. Fields are checked in a fixed
// order and the first failure is returned as a *ValidationError.
func Validate(form url.Values, exists PostExistsFunc) error {
	if len(form.Get(FieldHoneypot)) > 0 {
		return invalid(FieldHoneypot, "You appear to be a spammer, or your browser auto-fills this form.")
	}

	if name := form.Get(FieldName); len(name) > 128 || !namePattern.MatchString(name) {
		return invalid(FieldName, "Name is not valid")
	}

	if email := form.Get(FieldEmail); len(email) > 128 || !emailPattern.MatchString(email) {
		return invalid(FieldEmail, "Email address is not valid")
	}

	if website := form.Get(FieldWebsite); len(website) > 128 || website != "" && !websitePattern.MatchString(website) {
		return invalid(FieldWebsite, "Website is not valid")
	}

	if avatarType := form.Get(FieldAvatarType); len(avatarType) > 32 || !avatarTypePattern.MatchString(avatarType) {
		return invalid(FieldAvatarType, "Avatar type is not valid")
	}

	if pageID := form.Get(FieldPageID); len(pageID) > 1024 || !pageIDPattern.MatchString(pageID) {
		return invalid(FieldPageID, "page_id is not valid")
	}

	if contentType := form.Get(FieldContentType); len(contentType) > 4 || !contentTypePattern.MatchString(contentType) {
		return invalid(FieldContentType, "Content type is not valid")
	}

	if body := form.Get(FieldBody); len(body) > 8192 || body == "" {
		return invalid(FieldBody, "You forgot to write the actual comment!")
	}

	if exists != nil && !exists(form.Get(FieldPageID), form.Get(FieldContentType)) {
		return invalid(FieldPageID, "Specified post does not exist")
	}

	return nil
}
