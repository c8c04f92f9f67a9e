package newbill

// View is the rendering adapter for the new-bill form. Implementations
// own the form widgets; the controller only decides which messages are
// visible.
type View interface {
	// ClearFileInput empties the file input so no file is attached.
	ClearFileInput()

	// ShowFileError shows the inline file-validation message next to
	// the file input.
	ShowFileError(message string)

	// RemoveFileError removes the inline file-validation message.
	RemoveFileError()

	// ShowUploadError surfaces a failed proof upload. The input keeps
	// its file so the user can retry.
	ShowUploadError(message string)

	// ShowSubmitError renders the submission failure message right
	// after the form, replacing any previous one.
	ShowSubmitError(message string)
}
