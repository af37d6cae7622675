package model

// UserRecord is one row of the credential store. Passwords are stored and
// compared as plain text: rows are provisioned by the training organizer in
// the spreadsheet and the legacy data cannot be rehashed. FirstLogin is the
// store's timestamp string (timeutil.StoreLayout), empty until the first
// successful login.
type UserRecord struct {
	Username       string `json:"username"`
	Password       string `json:"-"`
	FirstLogin     string `json:"first_login"`
	FeedbackResult string `json:"feedback_result"`
}

func (u *UserRecord) HasFeedback() bool {
	return u.FeedbackResult != ""
}
