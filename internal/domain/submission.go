package domain

// Form field names posted by the contact page.
const (
	FieldName    = "name"
	FieldCaptcha = "_captcha"
)

// RejectionMessage is shown inline when a submission is judged automated.
const RejectionMessage = "You are a robot!"

// Submission is the transient record of one POST. It lives for the
// duration of the request and is never stored.
type Submission struct {
	ID       string
	Name     string
	Token    string
	HasToken bool // false when the _captcha field was absent
	RemoteIP string
	Fields   map[string]string
}

// NewSubmission builds a Submission from posted form values. Only the first
// value of each field is kept; absent fields read as empty.
func NewSubmission(id, remoteIP string, values map[string][]string) Submission {
	fields := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			fields[k] = vs[0]
		} else {
			fields[k] = ""
		}
	}
	token, ok := fields[FieldCaptcha]
	return Submission{
		ID:       id,
		Name:     fields[FieldName],
		Token:    token,
		HasToken: ok,
		RemoteIP: remoteIP,
		Fields:   fields,
	}
}

// Decision is the terminal outcome of a submission.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// Result carries the decision and, for rejections, the message to display.
type Result struct {
	Decision Decision
	Message  string
}
