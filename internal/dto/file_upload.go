package dto

type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
