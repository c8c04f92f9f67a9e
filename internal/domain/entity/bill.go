package entity

// Bill represents an expense record submitted by an employee for
// reimbursement review. JSON field names are the wire contract shared
// with the API server and must not change.
type Bill struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Amount       int    `json:"amount"`
	Date         string `json:"date"`
	VAT          string `json:"vat"`
	Pct          int    `json:"pct"`
	Commentary   string `json:"commentary"`
	FileURL      string `json:"fileUrl,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	Status       string `json:"status"`
	CommentAdmin string `json:"commentAdmin,omitempty"`
}

// HasProof reports whether the proof upload completed before submission.
// Both fields are recorded together by the upload step.
func (b *Bill) HasProof() bool {
	return b.FileURL != "" && b.FileName != ""
}

// CreatedBill is the response body of a multipart bill creation. The
// server assigns the identifier and the public proof URL; the caller
// keeps both for the follow-up metadata update.
type CreatedBill struct {
	Key     string `json:"key"`
	FileURL string `json:"fileUrl"`
}
