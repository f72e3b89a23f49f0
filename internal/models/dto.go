package models

// UploadResponse is returned by POST /cv/upload: the persisted record
// plus the raw text that was sent to the formatter.
type UploadResponse struct {
	CVData       *CV    `json:"cvData"`
	OriginalText string `json:"originalText"`
}

// CVPatch is the PUT /cv/:id body. Nil fields are left untouched;
// supplied fields replace the stored value wholesale.
type CVPatch struct {
	OriginalFileName *string           `json:"originalFileName"`
	Header           *Header           `json:"header"`
	Summary          *string           `json:"summary"`
	Experience       *[]ExperienceItem `json:"experience"`
	Education        *[]EducationItem  `json:"education"`
	Skills           *[]string         `json:"skills"`
	PhotoURL         *string           `json:"photoUrl"`
	PhotoFound       *bool             `json:"photoFound"`
	Meta             *Meta             `json:"meta"`
}
