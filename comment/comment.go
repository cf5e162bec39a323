// Package comment models a comment posted through the comment form and
// the rules a comment has to satisfy before it is stored.
package comment

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Form field names of the comment form.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldWebsite     = "website"
	FieldAvatarType  = "avatar_type"
	FieldPageID      = "page_id"
	FieldContentType = "content_type"
	FieldBody        = "body"
	FieldHoneypot    = "last_name"
)

// Comment is the document written to disk for every accepted comment.
// The plain email address is never serialized, only its hashes.
type Comment struct {
	Name           string `json:"name"`
	Email          string `json:"-"`
	EmailMd5       string `json:"emailMd5"`
	EmailMd5Salted string `json:"emailMd5Salted"`
	Website        string `json:"website"`
	AvatarType     string `json:"avatarType"`
	IPAddress      string `json:"ipv4Address"`
	PageID         string `json:"pageId"`
	Body           string `json:"body"`
	Timestamp      string `json:"timestamp"`

	// CreatedAt is the time the comment was received.
	CreatedAt time.Time `json:"-"`
}

// New creates a comment from validated form values.
func New(form url.Values, ip string, salt string, now time.Time) Comment {
	email := form.Get(FieldEmail)

	return Comment{
		Name:           form.Get(FieldName),
		Email:          email,
		EmailMd5:       Hash(email, ""),
		EmailMd5Salted: Hash(email, salt),
		Website:        form.Get(FieldWebsite),
		AvatarType:     form.Get(FieldAvatarType),
		IPAddress:      ip,
		PageID:         form.Get(FieldPageID),
		Body:           ProcessBody(form.Get(FieldBody)),
		Timestamp:      now.Format(time.RFC3339),
		CreatedAt:      now,
	}
}

// Filename returns the name of the file the comment is stored in.
func (c Comment) Filename() string {
	return Filename(c.Name, c.Body, c.CreatedAt)
}

// ProcessBody escapes the body for html. A triple quote is turned into
// a literal '>' after escaping, so it can be rendered as a quote marker.
func ProcessBody(body string) string {
	body = strings.ReplaceAll(body, `"""`, "%quote%")
	body = template.HTMLEscapeString(body)
	return strings.ReplaceAll(body, "%quote%", ">")
}

// Hash returns the hex md5 sum of s with salt appended. It is used to
// derive avatar service identifiers from email addresses.
func Hash(s string, salt string) string {
	sum := md5.Sum([]byte(s + salt))
	return hex.EncodeToString(sum[:])
}

// Filename builds "<timestamp>-<first words>.json".
func Filename(name string, body string, now time.Time) string {
	return Timestamp(now) + "-" + FirstWords(name+" "+body) + ".json"
}

// Timestamp formats now as YYYY-MM-DD-HHMMSS.
func Timestamp(now time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d-%02d%02d%02d",
		now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second())
}

const (
	maxFirstWords    = 7
	maxFirstWordsLen = 32
)

var wordPattern = regexp.MustCompile(`(?i)[a-z]+`)

// FirstWords returns up to seven lowercased ascii words of s joined by
// '-', cut to 32 characters.
func FirstWords(s string) string {
	words := wordPattern.FindAllString(s, maxFirstWords)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}

	joined := strings.Join(words, "-")
	if len(joined) > maxFirstWordsLen {
		joined = joined[:maxFirstWordsLen]
	}

	return strings.TrimRight(joined, " -")
}
