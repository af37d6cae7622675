package model

// Submission is one uploaded worksheet image. It lives only for the duration
// of a single evaluate-and-persist cycle; only the evaluation text and the
// archive link survive it.
type Submission struct {
	Filename string
	MIMEType string
	Data     []byte
}
