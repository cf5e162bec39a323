package client

import "slices"

// Classes applied to the message area.
const (
	ClassMessage = "message"
	ClassSuccess = "message--success"
	ClassError   = "message--error"
)

// MessageArea is the text and styling shown to the commenter after a
// submission.
type MessageArea struct {
	Text    string
	Classes []string
}

// HasClass reports whether class is applied to the area.
func (a MessageArea) HasClass(class string) bool {
	return slices.Contains(a.Classes, class)
}

func (a *MessageArea) clear() {
	a.Text = ""
	a.Classes = nil
}

func (a *MessageArea) add(classes ...string) {
	for _, class := range classes {
		if !a.HasClass(class) {
			a.Classes = append(a.Classes, class)
		}
	}
}

func (a MessageArea) clone() MessageArea {
	return MessageArea{Text: a.Text, Classes: slices.Clone(a.Classes)}
}
