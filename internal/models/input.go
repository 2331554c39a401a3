package models

// DocumentRole identifies which slot of an application a document fills.
const (
	RoleResume  = "resume"
	RoleLOR     = "lor"
	RoleClass10 = "class_10"
	RoleClass12 = "class_12"
	RoleCollege = "college_marksheets"
)

// Payload is one binary page/document payload sent to the AI model when
// text extraction did not yield enough content.
type Payload struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// DocumentInput is the immutable input to a validator: either extracted
// plain text or an ordered list of binary payloads, never both.
type DocumentInput struct {
	Text     string    `json:"text,omitempty"`
	Payloads []Payload `json:"payloads,omitempty"`
}

// IsEmpty reports whether there is nothing to validate.
func (d DocumentInput) IsEmpty() bool {
	return d.Text == "" && len(d.Payloads) == 0
}

// HasPayloads reports whether the document came through the binary
// fallback path instead of text extraction.
func (d DocumentInput) HasPayloads() bool {
	return len(d.Payloads) > 0
}

// TextInput builds a text-backed document input.
func TextInput(text string) DocumentInput {
	return DocumentInput{Text: text}
}

// PayloadInput builds a payload-backed document input.
func PayloadInput(payloads ...Payload) DocumentInput {
	return DocumentInput{Payloads: payloads}
}
