package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FormData builds a multipart/form-data body, mirroring what a browser
// form with a file input sends: plain fields plus file parts.
type FormData struct {
	fields []field
	files  []filePart
}

type field struct {
	name, value string
}

type filePart struct {
	name, fileName string
	content        io.Reader
}

// NewFormData creates an empty FormData.
func NewFormData() *FormData {
	return &FormData{}
}

// Append adds a plain field.
func (f *FormData) Append(name, value string) {
	f.fields = append(f.fields, field{name: name, value: value})
}

// AppendFile adds a file part with its original file name.
func (f *FormData) AppendFile(name, fileName string, content io.Reader) {
	f.files = append(f.files, filePart{name: name, fileName: fileName, content: content})
}

// Encode renders the multipart body and returns it with the matching
// Content-Type header value (including the boundary).
func (f *FormData) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", fld.name, err)
		}
	}
	for _, fp := range f.files {
		part, err := w.CreateFormFile(fp.name, fp.fileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", fp.name, err)
		}
		if _, err := io.Copy(part, fp.content); err != nil {
			return nil, "", fmt.Errorf("failed to copy file %s: %w", fp.fileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
